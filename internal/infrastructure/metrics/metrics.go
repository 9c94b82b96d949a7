package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "phone_price_bot"

// Metrics resolution engine va katalog uchun Prometheus metrikalari
type Metrics struct {
	queries       *prometheus.CounterVec
	queryDuration *prometheus.HistogramVec
	catalogRows   *prometheus.GaugeVec
	specLinks     prometheus.Gauge
	updates       *prometheus.CounterVec
}

// New metrikalarni reg ga ro'yxatdan o'tkazadi; nil bo'lsa DefaultRegisterer
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		queries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "Catalog queries by kind and outcome.",
		}, []string{"kind", "outcome"}),
		queryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_duration_seconds",
			Help:      "Time spent resolving a catalog query.",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
		}, []string{"kind"}),
		catalogRows: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_rows",
			Help:      "Rows seen while loading the price catalog, by state.",
		}, []string{"state"}),
		specLinks: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "spec_links",
			Help:      "Entries in the flattened spec link table.",
		}),
		updates: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transport_updates_total",
			Help:      "Incoming transport updates by transport and result.",
		}, []string{"transport", "result"}),
	}
}

// ObserveQuery bitta so'rov natijasini yozadi. outcome: confident|suggest|no_match|invalid
func (m *Metrics) ObserveQuery(kind, outcome string, d time.Duration) {
	m.queries.WithLabelValues(kind, outcome).Inc()
	m.queryDuration.WithLabelValues(kind).Observe(d.Seconds())
}

// SetCatalog records load statistics after startup.
func (m *Metrics) SetCatalog(rows, loaded, dropped, unpriced, specLinks int) {
	m.catalogRows.WithLabelValues("read").Set(float64(rows))
	m.catalogRows.WithLabelValues("loaded").Set(float64(loaded))
	m.catalogRows.WithLabelValues("dropped").Set(float64(dropped))
	m.catalogRows.WithLabelValues("unpriced").Set(float64(unpriced))
	m.specLinks.Set(float64(specLinks))
}

// ObserveUpdate transport (telegram, http) darajasidagi hodisa
func (m *Metrics) ObserveUpdate(transport, result string) {
	m.updates.WithLabelValues(transport, result).Inc()
}
