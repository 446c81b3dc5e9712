// Package accesslog emits one formatted log line per HTTP request/response
// exchange. The middleware packages build Records and hand them to a Logger,
// which renders them as plain text or JSON and writes them to a console,
// file or Redis sink. Emission never fails request handling: sink errors are
// reported on stderr and dropped.
package accesslog

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Format selects how log lines are rendered.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Options configures a Logger. The zero value writes text to stdout with no
// level filtering and no redaction.
type Options struct {
	// Level is the minimum level a record must reach to be written.
	Level zerolog.Level
	// Format selects text or json rendering. Defaults to text.
	Format Format
	// Output selects the sink. Defaults to console.
	Output Output
	// FilePath locates the log file when Output is OutputFile.
	FilePath string
	// RedisAddr and RedisKey locate the list lines are shipped to when
	// Output is OutputRedis.
	RedisAddr string
	RedisKey  string
	// RedactParams names query parameters whose values are masked in the
	// logged query string.
	RedactParams []string
	// Writer overrides Output with a caller-supplied sink.
	Writer io.Writer
}

// Logger renders Records and writes them to a sink. It is safe for
// concurrent use: it takes no locks and hands the sink one fully rendered
// line per record, leaving write serialization to the sink itself.
type Logger struct {
	zl     zerolog.Logger
	min    atomic.Int32
	redact *redactor
	closer io.Closer
}

// New builds a Logger. Unknown format or output values are configuration
// errors; a sink that cannot be opened or reached degrades to the console
// sink with an operational warning, so logging never blocks request
// handling.
func New(opts Options) (*Logger, error) {
	switch opts.Format {
	case FormatText, FormatJSON, "":
	default:
		return nil, fmt.Errorf("unknown format %q", opts.Format)
	}
	switch opts.Output {
	case OutputConsole, OutputFile, OutputRedis, "":
	default:
		return nil, fmt.Errorf("unknown output %q", opts.Output)
	}

	sink, closer, err := newSink(opts)
	if err != nil {
		log.Warn().Err(err).Msg("access log sink unavailable, falling back to console")
		sink, closer = os.Stdout, nil
	}
	var w io.Writer = sink
	if opts.Format != FormatJSON {
		w = newTextWriter(sink)
	}

	l := &Logger{
		zl:     zerolog.New(w),
		redact: newRedactor(opts.RedactParams),
		closer: closer,
	}
	l.min.Store(int32(opts.Level))
	return l, nil
}

// Log emits exactly one line for rec, or nothing when the record's level is
// below the configured minimum. It never returns an error and never panics;
// a failing sink write is reported on stderr by zerolog.
func (l *Logger) Log(rec Record) {
	lvl := rec.level()
	if lvl < l.Level() {
		return
	}
	evt := l.zl.WithLevel(lvl).
		Str(fieldTimestamp, rec.Time.UTC().Format(time.RFC3339)).
		Str(fieldMethod, rec.Method).
		Str(fieldPath, rec.Path)
	if q := l.redact.apply(rec.Query); q != "" {
		evt = evt.Str(fieldQuery, q)
	}
	evt = evt.Int(fieldStatus, rec.Status).
		Dur(fieldDuration, rec.Duration)
	if rec.ClientIP != "" {
		evt = evt.Str(fieldClientIP, rec.ClientIP)
	}
	if rec.UserAgent != "" {
		evt = evt.Str(fieldUserAgent, rec.UserAgent)
	}
	if rec.RequestID != "" {
		evt = evt.Str(fieldRequestID, rec.RequestID)
	}
	if rec.Err != nil {
		evt = evt.AnErr(fieldError, rec.Err)
	}
	evt.Send()
}

// SetLevel adjusts the minimum level at runtime.
func (l *Logger) SetLevel(lvl zerolog.Level) {
	l.min.Store(int32(lvl))
}

// Level reports the current minimum level.
func (l *Logger) Level() zerolog.Level {
	return zerolog.Level(l.min.Load())
}

// Close releases the sink when the Logger owns it (file and redis outputs).
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
