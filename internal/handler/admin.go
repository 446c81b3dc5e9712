package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/ronniefr/api-logger/accesslog"
)

// AdminHandler exposes the access logger's minimum level for inspection and
// adjustment at runtime.
type AdminHandler struct {
	logger *accesslog.Logger
}

func NewAdminHandler(l *accesslog.Logger) *AdminHandler {
	return &AdminHandler{logger: l}
}

// ServeHTTP dispatches on method: GET reports the current level, POST sets it.
func (a *AdminHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"level": a.logger.Level().String()})
	case http.MethodPost:
		var payload struct {
			Level string `json:"level"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Level == "" {
			http.Error(w, "invalid payload", http.StatusBadRequest)
			return
		}
		lvl, err := zerolog.ParseLevel(payload.Level)
		if err != nil {
			http.Error(w, "unknown level", http.StatusBadRequest)
			return
		}
		a.logger.SetLevel(lvl)
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}
