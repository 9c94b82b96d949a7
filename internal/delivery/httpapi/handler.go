package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/yourusername/phone-price-bot/internal/domain/entity"
	"github.com/yourusername/phone-price-bot/internal/usecase"
	"github.com/yourusername/phone-price-bot/pkg/logger"
)

// Handler resolution engine ustidagi yupqa HTTP qatlam
type Handler struct {
	resolver  usecase.CatalogResolver
	formatter *usecase.Formatter
}

// NewHandler yangi Handler yaratish
func NewHandler(resolver usecase.CatalogResolver) *Handler {
	return &Handler{resolver: resolver, formatter: usecase.NewFormatter(resolver)}
}

// SearchResponse barcha qidiruv endpointlari javobi
type SearchResponse struct {
	Kind        string                 `json:"kind"`
	Results     []entity.DisplayRecord `json:"results"`
	Suggestions []entity.Suggestion    `json:"suggestions"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"entries": h.resolver.Len(),
	})
}

// SearchByName handles GET /api/v1/search/name?q=
func (h *Handler) SearchByName(w http.ResponseWriter, r *http.Request) {
	q, ok := requireParam(w, r, "q")
	if !ok {
		return
	}
	if store := strings.TrimSpace(r.URL.Query().Get("store")); store != "" {
		h.writeOutcome(w, h.resolver.SearchByNameInStore(store, q))
		return
	}
	h.writeOutcome(w, h.resolver.SearchByName(q))
}

// SearchByPrice handles GET /api/v1/search/price?q=; a non-numeric price is a 400.
func (h *Handler) SearchByPrice(w http.ResponseWriter, r *http.Request) {
	q, ok := requireParam(w, r, "q")
	if !ok {
		return
	}
	out, err := h.resolver.SearchByPrice(q)
	if err != nil {
		if errors.Is(err, entity.ErrInvalidPrice) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid price", Details: err.Error()})
			return
		}
		logger.Error().Err(err).Msg("price search failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	h.writeOutcome(w, out)
}

func (h *Handler) SearchByStore(w http.ResponseWriter, r *http.Request) {
	q, ok := requireParam(w, r, "q")
	if !ok {
		return
	}
	h.writeOutcome(w, h.resolver.SearchByStore(q))
}

func (h *Handler) SearchByBrand(w http.ResponseWriter, r *http.Request) {
	q, ok := requireParam(w, r, "q")
	if !ok {
		return
	}
	h.writeOutcome(w, h.resolver.SearchByBrand(q))
}

// ResolveSpec handles GET /api/v1/spec?name=; always 200 with a url.
func (h *Handler) ResolveSpec(w http.ResponseWriter, r *http.Request) {
	name, ok := requireParam(w, r, "name")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"name": name,
		"url":  h.resolver.ResolveSpecURL(name),
	})
}

func (h *Handler) Stores(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"stores": nonNil(h.resolver.Stores())})
}

func (h *Handler) Brands(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"brands": nonNil(h.resolver.Brands())})
}

func (h *Handler) writeOutcome(w http.ResponseWriter, out entity.Outcome) {
	writeJSON(w, http.StatusOK, NewSearchResponse(h.formatter, out))
}

// NewSearchResponse builds the JSON body for an outcome; slices are never nil.
func NewSearchResponse(f *usecase.Formatter, out entity.Outcome) SearchResponse {
	resp := SearchResponse{
		Kind:        out.Kind.String(),
		Results:     f.Format(out.Entries),
		Suggestions: out.Suggestions,
	}
	if resp.Results == nil {
		resp.Results = []entity.DisplayRecord{}
	}
	if resp.Suggestions == nil {
		resp.Suggestions = []entity.Suggestion{}
	}
	return resp
}

func requireParam(w http.ResponseWriter, r *http.Request, key string) (string, bool) {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing query parameter", Details: key})
		return "", false
	}
	return v, true
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn().Err(err).Msg("write response")
	}
}
