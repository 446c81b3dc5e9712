package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ronniefr/api-logger/accesslog"
)

// Config holds configuration loaded from environment variables.
type Config struct {
	Log                     accesslog.Options
	ListenAddr              string
	JWTSecret               string
	JWTIssuer               string
	GracefulShutdownTimeout int
}

// Load reads a .env file when present, then environment variables, and
// returns a Config with sensible defaults.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Log: accesslog.Options{
			Level:        parseLevel(os.Getenv("LOG_LEVEL")),
			Format:       accesslog.Format(getenv("LOG_FORMAT", string(accesslog.FormatText))),
			Output:       accesslog.Output(getenv("LOG_OUTPUT", string(accesslog.OutputConsole))),
			FilePath:     getenv("LOG_FILE_PATH", "logs/access.log"),
			RedisAddr:    os.Getenv("LOG_REDIS_ADDR"),
			RedisKey:     os.Getenv("LOG_REDIS_KEY"),
			RedactParams: splitList(os.Getenv("LOG_REDACT_PARAMS")),
		},
		ListenAddr: getenv("LISTEN_ADDR", ":8080"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		JWTIssuer:  os.Getenv("JWT_ISSUER"),
	}
	timeout := os.Getenv("GRACEFUL_SHUTDOWN_TIMEOUT")
	if timeout != "" {
		if t, err := strconv.Atoi(timeout); err == nil {
			cfg.GracefulShutdownTimeout = t
		}
	}
	if cfg.GracefulShutdownTimeout == 0 {
		cfg.GracefulShutdownTimeout = 15
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLevel(s string) zerolog.Level {
	if s == "" {
		return zerolog.InfoLevel
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil {
		log.Warn().Str("level", s).Msg("unknown LOG_LEVEL, falling back to info")
		return zerolog.InfoLevel
	}
	return lvl
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
