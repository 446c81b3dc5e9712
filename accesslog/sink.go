package accesslog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Output selects the sink log lines are written to.
type Output string

const (
	OutputConsole Output = "console"
	OutputFile    Output = "file"
	OutputRedis   Output = "redis"
)

// newSink builds the writer for the configured output. File sinks open in
// append mode and create missing parent directories. The returned closer is
// non-nil when the Logger owns the underlying resource.
func newSink(opts Options) (io.Writer, io.Closer, error) {
	if opts.Writer != nil {
		return opts.Writer, nil, nil
	}
	switch opts.Output {
	case OutputConsole, "":
		return os.Stdout, nil, nil
	case OutputFile:
		if opts.FilePath == "" {
			return nil, nil, fmt.Errorf("file output requires a file path")
		}
		if dir := filepath.Dir(opts.FilePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("create log directory: %w", err)
			}
		}
		f, err := os.OpenFile(opts.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		return f, f, nil
	case OutputRedis:
		w, err := newRedisWriter(opts.RedisAddr, opts.RedisKey)
		if err != nil {
			return nil, nil, err
		}
		return w, w, nil
	}
	return nil, nil, fmt.Errorf("unknown output %q", opts.Output)
}
