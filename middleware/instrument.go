package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ronniefr/api-logger/metrics"
)

// Instrument records request counts, latencies and the in-flight gauge for
// every request passing through. Panicking requests are counted as 500s
// before the panic continues up the chain.
func Instrument(m *metrics.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			m.InFlight.Inc()
			defer func() {
				m.InFlight.Dec()
				p := recover()
				code := sw.status
				if sw.hijacked {
					code = http.StatusSwitchingProtocols
				}
				if p != nil {
					code = http.StatusInternalServerError
				}
				m.Requests.WithLabelValues(r.Method, strconv.Itoa(code)).Inc()
				m.Duration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
				if p != nil {
					panic(p)
				}
			}()

			next.ServeHTTP(sw, r)
		})
	}
}
