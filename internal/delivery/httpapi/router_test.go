package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/phone-price-bot/internal/domain/constants"
	"github.com/yourusername/phone-price-bot/internal/domain/entity"
	"github.com/yourusername/phone-price-bot/internal/infrastructure/metrics"
	"github.com/yourusername/phone-price-bot/internal/infrastructure/storage"
	"github.com/yourusername/phone-price-bot/internal/usecase"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	catalog, _ := storage.NewCatalog([]entity.CatalogRow{
		{Name: "Galaxy S23", Price: "750,000", Brand: "Samsung", Store: "Store A"},
		{Name: "Galaxy S23 Ultra", Price: "1,300,000", Brand: "Samsung", Store: "Store B"},
		{Name: "iPhone 15", Price: "950,000", Brand: "Apple", Store: "Store A"},
		{Name: "iPhone 15 Pro", Price: "1,150,000", Brand: "Apple", Store: "Store B"},
		{Name: "iPhone 14", Price: "700,000", Brand: "Apple", Store: "Store B"},
	})
	specs := storage.NewSpecLinks([]entity.SpecLink{{Name: "Apple iPhone 15", URL: "https://specs.example/ip15"}})

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	resolver := usecase.WithObserver(usecase.NewCatalogResolver(catalog, specs, entity.DefaultPolicy()), m)

	srv := httptest.NewServer(NewRouter(resolver, Options{
		Metrics:  promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		Observer: m,
	}))
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, srv *httptest.Server, path string, query url.Values, out interface{}) int {
	t.Helper()
	resp, err := http.Get(srv.URL + path + "?" + query.Encode())
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestSearchByName_Confident(t *testing.T) {
	srv := newTestServer(t)

	var body SearchResponse
	status := getJSON(t, srv, "/api/v1/search/name", url.Values{"q": {"galaxy s23"}}, &body)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "confident", body.Kind)
	require.Len(t, body.Results, 1)
	assert.Equal(t, "Galaxy S23", body.Results[0].DeviceName)
	assert.Equal(t, constants.FallbackSpecURL, body.Results[0].SpecURL)
	assert.Empty(t, body.Suggestions)
}

func TestSearchByName_Suggest(t *testing.T) {
	srv := newTestServer(t)

	var body SearchResponse
	getJSON(t, srv, "/api/v1/search/name", url.Values{"q": {"iphone 16"}}, &body)

	assert.Equal(t, "suggest", body.Kind)
	assert.Empty(t, body.Results)
	require.Len(t, body.Suggestions, 3)
	assert.Equal(t, "iPhone 15", body.Suggestions[0].Name)
}

func TestSearchByName_InStore(t *testing.T) {
	srv := newTestServer(t)

	var body SearchResponse
	getJSON(t, srv, "/api/v1/search/name", url.Values{"q": {"iPhone 15"}, "store": {"Store B"}}, &body)

	assert.Equal(t, "suggest", body.Kind)
	assert.Equal(t, []entity.Suggestion{{Name: "iPhone 14", Score: 89}, {Name: "iPhone 15 Pro", Score: 82}}, body.Suggestions)
}

func TestSearchByPrice(t *testing.T) {
	srv := newTestServer(t)

	var body SearchResponse
	status := getJSON(t, srv, "/api/v1/search/price", url.Values{"q": {"1000000"}}, &body)
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, body.Results, 1)
	assert.Equal(t, "iPhone 15", body.Results[0].DeviceName)
	assert.Equal(t, "https://specs.example/ip15", body.Results[0].SpecURL)

	status = getJSON(t, srv, "/api/v1/search/price", url.Values{"q": {"cheap"}}, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestSearch_MissingQuery(t *testing.T) {
	srv := newTestServer(t)
	for _, path := range []string{"/api/v1/search/name", "/api/v1/search/store", "/api/v1/search/brand", "/api/v1/spec"} {
		assert.Equal(t, http.StatusBadRequest, getJSON(t, srv, path, url.Values{}, nil), path)
	}
}

func TestStoreAndBrandSearch(t *testing.T) {
	srv := newTestServer(t)

	var body SearchResponse
	getJSON(t, srv, "/api/v1/search/store", url.Values{"q": {"store b"}}, &body)
	assert.Equal(t, "confident", body.Kind)
	assert.Len(t, body.Results, 3)

	getJSON(t, srv, "/api/v1/search/brand", url.Values{"q": {"nokia"}}, &body)
	assert.Equal(t, "no_match", body.Kind)
}

func TestResolveSpec(t *testing.T) {
	srv := newTestServer(t)

	var body map[string]string
	getJSON(t, srv, "/api/v1/spec", url.Values{"name": {"iPhone 15"}}, &body)
	assert.Equal(t, "https://specs.example/ip15", body["url"])

	getJSON(t, srv, "/api/v1/spec", url.Values{"name": {"Totally Unknown Device 9000"}}, &body)
	assert.Equal(t, constants.FallbackSpecURL, body["url"])
}

func TestListsHealthAndMetrics(t *testing.T) {
	srv := newTestServer(t)

	var stores map[string][]string
	getJSON(t, srv, "/api/v1/stores", url.Values{}, &stores)
	assert.Equal(t, []string{"Store A", "Store B"}, stores["stores"])

	var brands map[string][]string
	getJSON(t, srv, "/api/v1/brands", url.Values{}, &brands)
	assert.Equal(t, []string{"Apple", "Samsung"}, brands["brands"])

	var health map[string]interface{}
	assert.Equal(t, http.StatusOK, getJSON(t, srv, "/health", url.Values{}, &health))
	assert.Equal(t, float64(5), health["entries"])

	getJSON(t, srv, "/api/v1/search/name", url.Values{"q": {"galaxy s23"}}, nil)
	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
