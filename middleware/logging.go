package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/ronniefr/api-logger/accesslog"
)

// Logging returns a middleware that records one access log entry per request:
// method, path, status code and handling duration. Panics from downstream
// handlers are logged as server errors and then re-raised so the outer
// recovery layer (or the net/http server) can deal with them.
func Logging(l *accesslog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			defer func() {
				rec := accesslog.Record{
					Time:      start,
					Method:    r.Method,
					Path:      r.URL.Path,
					Query:     r.URL.RawQuery,
					Status:    sw.status,
					Duration:  time.Since(start),
					ClientIP:  clientIP(r),
					UserAgent: r.UserAgent(),
					RequestID: r.Header.Get("X-Request-ID"),
				}
				if p := recover(); p != nil {
					rec.Status = http.StatusInternalServerError
					rec.Err = panicError(p)
					l.Log(rec)
					panic(p)
				}
				if sw.hijacked {
					rec.Status = http.StatusSwitchingProtocols
				}
				l.Log(rec)
			}()

			next.ServeHTTP(sw, r)
		})
	}
}

func panicError(p interface{}) error {
	if err, ok := p.(error); ok {
		return err
	}
	return fmt.Errorf("panic: %v", p)
}

// clientIP attempts to extract the remote IP address.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
