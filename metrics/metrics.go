package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
	InFlight prometheus.Gauge

	reg *prometheus.Registry
}

// NewRegistry builds the request metrics on a dedicated Prometheus registry,
// so multiple instances can coexist within one process.
func NewRegistry() *Registry {
	r := &Registry{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "apilogger_requests_total",
			Help: "Total requests received, by method and status code",
		}, []string{"method", "code"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "apilogger_request_duration_seconds",
			Help:    "Request handling duration in seconds, by method",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
		InFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "apilogger_in_flight_requests",
			Help: "Requests currently being handled",
		}),
		reg: prometheus.NewRegistry(),
	}
	r.reg.MustRegister(r.Requests, r.Duration, r.InFlight)
	return r
}

func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
