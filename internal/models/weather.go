package models

// WeatherReading is a snapshot of current conditions for a place.
// Readings are transient; they are recomputed on each use and never stored.
type WeatherReading struct {
	TemperatureC       float64 `json:"temperature"`
	Description        string  `json:"description"`
	HumidityPct        int     `json:"humidity"`
	RainProbabilityPct int     `json:"rain_probability"`
	IsLive             bool    `json:"live"`
}
