package service

import (
	"context"
	"strings"
	"time"
)

// Forecast is a single city weather report.
type Forecast struct {
	City         string  `json:"city"`
	TemperatureC float64 `json:"temperature_c"`
	Conditions   string  `json:"conditions"`
}

// Weather answers forecast lookups after a fixed delay, standing in for a
// slow upstream provider.
type Weather struct {
	delay time.Duration
}

// NewWeather constructs a Weather service with the given upstream delay.
func NewWeather(delay time.Duration) *Weather {
	return &Weather{delay: delay}
}

var forecasts = map[string]Forecast{
	"london": {City: "london", TemperatureC: 11.5, Conditions: "overcast"},
	"tokyo":  {City: "tokyo", TemperatureC: 18.0, Conditions: "clear"},
	"sydney": {City: "sydney", TemperatureC: 22.3, Conditions: "sunny"},
}

// Lookup returns the forecast for a city once the upstream delay has elapsed.
// Cities without canned data get a generic fair-weather report.
func (s *Weather) Lookup(ctx context.Context, city string) (Forecast, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return Forecast{}, ctx.Err()
		}
	}
	key := strings.ToLower(city)
	if f, ok := forecasts[key]; ok {
		return f, nil
	}
	return Forecast{City: key, TemperatureC: 15.0, Conditions: "fair"}, nil
}
