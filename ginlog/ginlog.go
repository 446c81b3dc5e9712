// Package ginlog adapts the access logger to gin handler chains.
package ginlog

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ronniefr/api-logger/accesslog"
)

// Middleware records one access log entry per request routed through gin.
// Errors attached via c.Error show up on the entry, and panics are logged
// as server errors before being re-raised for gin's recovery layer.
func Middleware(l *accesslog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		defer func() {
			rec := accesslog.Record{
				Time:      start,
				Method:    c.Request.Method,
				Path:      c.Request.URL.Path,
				Query:     c.Request.URL.RawQuery,
				Status:    c.Writer.Status(),
				Duration:  time.Since(start),
				ClientIP:  c.ClientIP(),
				UserAgent: c.Request.UserAgent(),
				RequestID: c.Request.Header.Get("X-Request-ID"),
			}
			if p := recover(); p != nil {
				rec.Status = http.StatusInternalServerError
				rec.Err = toError(p)
				l.Log(rec)
				panic(p)
			}
			if len(c.Errors) > 0 {
				rec.Err = c.Errors.Last()
			}
			l.Log(rec)
		}()

		c.Next()
	}
}

func toError(p interface{}) error {
	if err, ok := p.(error); ok {
		return err
	}
	return fmt.Errorf("panic: %v", p)
}
