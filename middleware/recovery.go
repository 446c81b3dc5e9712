package middleware

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

// Recovery converts handler panics into 500 responses so a single bad request
// cannot take the server down. It sits outermost in the chain, after the
// access logger has already recorded the failure and re-raised the panic.
// http.ErrAbortHandler is passed through untouched, as net/http uses it to
// abort a response on purpose.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				if p == http.ErrAbortHandler {
					panic(p)
				}
				log.Error().Interface("panic", p).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Msg("recovered from handler panic")
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
