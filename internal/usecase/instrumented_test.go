package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	calls []string
}

func (o *recordingObserver) ObserveQuery(kind, outcome string, d time.Duration) {
	o.calls = append(o.calls, kind+":"+outcome)
}

func TestWithObserver_RecordsOutcomes(t *testing.T) {
	obs := &recordingObserver{}
	r := WithObserver(newTestResolver(t), obs)

	r.SearchByName("galaxy s23")
	r.SearchByName("iphone 16")
	_, err := r.SearchByPrice("abc")
	require.Error(t, err)
	r.SearchByStore("xyz")
	r.SearchByBrand("sams")
	r.SearchByNameInStore("Store B", "galaxy s23")
	r.ResolveSpecURL("iPhone 15")
	r.ResolveSpecURL("Totally Unknown Device 9000")

	assert.Equal(t, []string{
		"name:confident",
		"name:suggest",
		"price:invalid",
		"store:no_match",
		"brand:confident",
		"store_name:confident",
		"spec:confident",
		"spec:fallback",
	}, obs.calls)
}

func TestWithObserver_NilObserverIsIdentity(t *testing.T) {
	r := newTestResolver(t)
	assert.Same(t, r, WithObserver(r, nil))
}
