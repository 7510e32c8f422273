// Package metrics holds the Prometheus collectors of the API.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	globalMetrics *Metrics
	metricsOnce   sync.Once
)

type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Cascading deletes by kind ("group", "row", "project") and outcome.
	CascadeDeletesTotal *prometheus.CounterVec
	CellUpsertsTotal    *prometheus.CounterVec
}

// New registers the collectors on the default registry once per process and
// returns them.
//
// Metrics:
//   - ceo_http_requests_total{method,route,status}
//   - ceo_http_request_duration_seconds{method,route}
//   - ceo_cascade_deletes_total{kind,outcome}
//   - ceo_cell_upserts_total{outcome}
func New() *Metrics {
	metricsOnce.Do(func() {
		globalMetrics = &Metrics{
			RequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "ceo_http_requests_total",
					Help: "Total number of HTTP requests handled",
				},
				[]string{"method", "route", "status"},
			),
			RequestDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "ceo_http_request_duration_seconds",
					Help:    "Duration of HTTP requests in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"method", "route"},
			),
			CascadeDeletesTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "ceo_cascade_deletes_total",
					Help: "Total number of cascading deletes by kind and outcome",
				},
				[]string{"kind", "outcome"},
			),
			CellUpsertsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "ceo_cell_upserts_total",
					Help: "Total number of cell upserts by outcome",
				},
				[]string{"outcome"},
			),
		}
	})
	return globalMetrics
}

func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) CascadeDelete(kind string, err error) {
	if m == nil {
		return
	}
	m.CascadeDeletesTotal.WithLabelValues(kind, outcome(err)).Inc()
}

func (m *Metrics) CellUpsert(err error) {
	if m == nil {
		return
	}
	m.CellUpsertsTotal.WithLabelValues(outcome(err)).Inc()
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
