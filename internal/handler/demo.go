package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ronniefr/api-logger/internal/repository"
	"github.com/ronniefr/api-logger/internal/service"
)

// DemoHandler serves the example endpoints used to exercise the logging chain.
type DemoHandler struct {
	weather *service.Weather
	items   *repository.ItemStore
}

func NewDemoHandler(weather *service.Weather, items *repository.ItemStore) *DemoHandler {
	return &DemoHandler{weather: weather, items: items}
}

// Weather looks up a city forecast through the simulated upstream.
func (h *DemoHandler) Weather(w http.ResponseWriter, r *http.Request) {
	f, err := h.weather.Lookup(r.Context(), r.PathValue("city"))
	if err != nil {
		http.Error(w, "upstream timeout", http.StatusGatewayTimeout)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(f)
}

// CreateItem stores a new item and returns it with a generated id.
func (h *DemoHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Name == "" {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	it := repository.Item{ID: uuid.NewString(), Name: payload.Name, CreatedAt: time.Now().UTC()}
	h.items.Add(it)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(it)
}

// GetItem fetches a stored item by id.
func (h *DemoHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	it, ok := h.items.Get(r.PathValue("id"))
	if !ok {
		http.Error(w, "item not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(it)
}

// ServerError always fails, for demonstrating error-level log lines.
func (h *DemoHandler) ServerError(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(map[string]string{"error": "this is a test error"})
}

// Crash panics, for demonstrating panic capture in the access log.
func (h *DemoHandler) Crash(w http.ResponseWriter, r *http.Request) {
	panic("something went wrong")
}
