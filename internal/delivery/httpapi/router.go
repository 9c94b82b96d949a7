package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yourusername/phone-price-bot/internal/usecase"
	"github.com/yourusername/phone-price-bot/pkg/logger"
)

const requestTimeout = 10 * time.Second

// UpdateObserver transport hodisalarini qabul qiladi
type UpdateObserver interface {
	ObserveUpdate(transport, result string)
}

// Options router sozlamalari
type Options struct {
	// Metrics /metrics handler; nil bo'lsa promhttp.Handler()
	Metrics  http.Handler
	Observer UpdateObserver
}

// NewRouter HTTP lookup API ni quradi
func NewRouter(resolver usecase.CatalogResolver, opts Options) http.Handler {
	h := NewHandler(resolver)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger(opts.Observer))
	r.Use(chimiddleware.Timeout(requestTimeout))

	r.Get("/health", h.Health)

	metricsHandler := opts.Metrics
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/search", func(r chi.Router) {
			r.Get("/name", h.SearchByName)
			r.Get("/price", h.SearchByPrice)
			r.Get("/store", h.SearchByStore)
			r.Get("/brand", h.SearchByBrand)
		})
		r.Get("/spec", h.ResolveSpec)
		r.Get("/stores", h.Stores)
		r.Get("/brands", h.Brands)
	})
	return r
}

func requestLogger(observer UpdateObserver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			if observer != nil {
				observer.ObserveUpdate("http", strconv.Itoa(status/100)+"xx")
			}
			logger.Debug().
				Str("request_id", chimiddleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Dur("took", time.Since(start)).
				Msg("http request")
		})
	}
}
