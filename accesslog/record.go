package accesslog

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Field names used in the JSON rendering. The text renderer consumes the
// same event and prints only the parts it places explicitly, so every name
// added here must also stay in recordFields.
const (
	fieldTimestamp = "timestamp"
	fieldMethod    = "method"
	fieldPath      = "path"
	fieldQuery     = "query_params"
	fieldStatus    = "status"
	fieldDuration  = "duration_ms"
	fieldClientIP  = "client_host"
	fieldUserAgent = "user_agent"
	fieldRequestID = "request_id"
	fieldError     = "error"
)

var recordFields = []string{
	fieldTimestamp,
	fieldMethod,
	fieldPath,
	fieldQuery,
	fieldStatus,
	fieldDuration,
	fieldClientIP,
	fieldUserAgent,
	fieldRequestID,
	fieldError,
}

// Record describes one request/response exchange. It is created when the
// request arrives, fully populated once the handler returns, passed to
// Logger.Log and then discarded.
type Record struct {
	// Time is the arrival instant of the request.
	Time   time.Time
	Method string
	Path   string
	// Query is the raw query string; denied parameters are masked at
	// emission time.
	Query     string
	Status    int
	Duration  time.Duration
	ClientIP  string
	UserAgent string
	RequestID string
	// Err is set when the downstream handler failed, typically with a
	// panic value. It forces the error level.
	Err error
}

// level maps a record to its log level: handler failures and 5xx responses
// are errors, 4xx responses warnings, everything else info.
func (r Record) level() zerolog.Level {
	switch {
	case r.Err != nil || r.Status >= http.StatusInternalServerError:
		return zerolog.ErrorLevel
	case r.Status >= http.StatusBadRequest:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}
