package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/FrancoGastia/AI-Travel-Companion/internal/observability"
	"github.com/FrancoGastia/AI-Travel-Companion/internal/weather"
)

// WeatherHandler exposes the weather lookup directly
type WeatherHandler struct {
	lookup  weather.Lookup
	metrics *observability.Metrics
	log     *zap.Logger
}

// NewWeatherHandler creates a new weather handler
func NewWeatherHandler(lookup weather.Lookup, metrics *observability.Metrics, log *zap.Logger) *WeatherHandler {
	return &WeatherHandler{lookup: lookup, metrics: metrics, log: log}
}

// RegisterRoutes registers weather routes
func (h *WeatherHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/weather/{city}", h.Get).Methods("GET")
}

// Get handles GET /api/weather/{city}. A failed provider call still
// returns a usable fallback reading.
func (h *WeatherHandler) Get(w http.ResponseWriter, r *http.Request) {
	city := mux.Vars(r)["city"]
	if city == "" {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "City is required")
		return
	}

	reading := h.lookup.Fetch(r.Context(), city)

	if h.metrics != nil {
		outcome := "fallback"
		if reading.IsLive {
			outcome = "live"
		}
		h.metrics.WeatherLookups.WithLabelValues(outcome).Inc()
	}

	h.log.Debug("weather_lookup_served",
		zap.String("city", city),
		zap.Bool("live", reading.IsLive),
	)

	respondJSON(w, http.StatusOK, map[string]any{
		"city":    city,
		"weather": reading,
	})
}
