package usecase

import (
	"errors"
	"time"

	"github.com/yourusername/phone-price-bot/internal/domain/entity"
	"github.com/yourusername/phone-price-bot/pkg/logger"
)

// QueryObserver so'rov natijalarini qabul qiladi (masalan Prometheus)
type QueryObserver interface {
	ObserveQuery(kind, outcome string, d time.Duration)
}

type instrumentedResolver struct {
	CatalogResolver
	observer QueryObserver
	now      func() time.Time
}

// WithObserver wraps r so every search reports its kind, outcome and duration.
func WithObserver(r CatalogResolver, observer QueryObserver) CatalogResolver {
	if observer == nil {
		return r
	}
	return &instrumentedResolver{CatalogResolver: r, observer: observer, now: time.Now}
}

func (r *instrumentedResolver) record(kind string, start time.Time, out entity.Outcome, err error) {
	outcome := out.Kind.String()
	if errors.Is(err, entity.ErrInvalidPrice) {
		outcome = "invalid"
	}
	elapsed := r.now().Sub(start)
	r.observer.ObserveQuery(kind, outcome, elapsed)
	logger.Debug().Str("kind", kind).Str("outcome", outcome).Dur("took", elapsed).Msg("query resolved")
}

func (r *instrumentedResolver) SearchByName(query string) entity.Outcome {
	start := r.now()
	out := r.CatalogResolver.SearchByName(query)
	r.record(string(entity.SearchModeName), start, out, nil)
	return out
}

func (r *instrumentedResolver) SearchByPrice(query string) (entity.Outcome, error) {
	start := r.now()
	out, err := r.CatalogResolver.SearchByPrice(query)
	r.record(string(entity.SearchModePrice), start, out, err)
	return out, err
}

func (r *instrumentedResolver) SearchByStore(query string) entity.Outcome {
	start := r.now()
	out := r.CatalogResolver.SearchByStore(query)
	r.record(string(entity.SearchModeStore), start, out, nil)
	return out
}

func (r *instrumentedResolver) SearchByBrand(query string) entity.Outcome {
	start := r.now()
	out := r.CatalogResolver.SearchByBrand(query)
	r.record(string(entity.SearchModeBrand), start, out, nil)
	return out
}

func (r *instrumentedResolver) SearchByNameInStore(store, query string) entity.Outcome {
	start := r.now()
	out := r.CatalogResolver.SearchByNameInStore(store, query)
	r.record(string(entity.SearchModeNameInStore), start, out, nil)
	return out
}

func (r *instrumentedResolver) ResolveSpecURL(name string) string {
	start := r.now()
	url := r.CatalogResolver.ResolveSpecURL(name)
	outcome := "confident"
	if url == r.Policy().FallbackSpecURL {
		outcome = "fallback"
	}
	r.observer.ObserveQuery("spec", outcome, r.now().Sub(start))
	return url
}
