// Package metrics exposes Prometheus instruments for decoding and station lookups.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/BrandonDHaskell/farecard/internal/farecard/service"
)

// Collector holds the application's instruments. It implements
// service.Diagnostics, service.RecordObserver and service.StatusSink.
type Collector struct {
	StationLookupsTotal   *prometheus.CounterVec
	StationLookupDuration *prometheus.HistogramVec
	RecordsDecodedTotal   *prometheus.CounterVec
	CodeTableUp           prometheus.Gauge
}

// NewCollector registers the instruments on reg under namespace.
func NewCollector(reg prometheus.Registerer, namespace string) *Collector {
	f := promauto.With(reg)
	return &Collector{
		StationLookupsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "station_lookups_total",
				Help:      "Station lookups by code table and outcome (found, not_found, backend_fault)",
			},
			[]string{"table", "outcome"},
		),

		StationLookupDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "station_lookup_duration_seconds",
				Help:      "Station lookup latency in seconds",
				Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 2.0},
			},
			[]string{"table"},
		),

		RecordsDecodedTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "records_decoded_total",
				Help:      "History records decoded by kind",
			},
			[]string{"kind"},
		),

		CodeTableUp: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "codetable_up",
				Help:      "1 if the code table backend answered the last ping",
			},
		),
	}
}

func (c *Collector) ObserveLookup(ev service.LookupEvent) {
	c.StationLookupsTotal.WithLabelValues(string(ev.Table), ev.Outcome).Inc()
	c.StationLookupDuration.WithLabelValues(string(ev.Table)).Observe(ev.Duration.Seconds())
}

func (c *Collector) ObserveRecord(kind string) {
	c.RecordsDecodedTotal.WithLabelValues(kind).Inc()
}

func (c *Collector) SetCodeTableUp(up bool) {
	if up {
		c.CodeTableUp.Set(1)
	} else {
		c.CodeTableUp.Set(0)
	}
}
