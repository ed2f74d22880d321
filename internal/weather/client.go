// Package weather looks up current conditions for a destination through the
// OpenWeatherMap current-weather API. Lookups fail soft: any transport,
// status, or parse problem yields a fixed synthetic reading instead of an
// error, so callers never branch on failure.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/FrancoGastia/AI-Travel-Companion/internal/models"
	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the OpenWeatherMap API root
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5"
	// DefaultTimeout bounds a single lookup
	DefaultTimeout = 5 * time.Second
)

// Lookup fetches current conditions for a place name
type Lookup interface {
	Fetch(ctx context.Context, place string) models.WeatherReading
}

// Fallback is the reading substituted when the live lookup fails
func Fallback() models.WeatherReading {
	return models.WeatherReading{
		TemperatureC:       22,
		Description:        "parcialmente nublado",
		HumidityPct:        65,
		RainProbabilityPct: 20,
		IsLive:             false,
	}
}

// Client implements Lookup against OpenWeatherMap
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a weather client. baseURL may be empty to use the default.
func NewClient(apiKey, baseURL string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     logger,
	}
}

// currentWeatherResponse mirrors the fields we read from the API
type currentWeatherResponse struct {
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Clouds struct {
		All int `json:"all"`
	} `json:"clouds"`
}

// Fetch returns current conditions for place, or the fallback reading on any
// failure. Cloud cover stands in for rain probability, as the free tier
// exposes no direct precipitation probability.
func (c *Client) Fetch(ctx context.Context, place string) models.WeatherReading {
	reading, err := c.fetch(ctx, place)
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("weather_lookup_failed",
				zap.String("place", place),
				zap.Error(err),
			)
		}
		return Fallback()
	}
	return reading
}

func (c *Client) fetch(ctx context.Context, place string) (models.WeatherReading, error) {
	params := url.Values{}
	params.Set("q", place)
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")
	params.Set("lang", "es")

	reqURL := fmt.Sprintf("%s/weather?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return models.WeatherReading{}, fmt.Errorf("failed to build weather request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.WeatherReading{}, fmt.Errorf("weather request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return models.WeatherReading{}, fmt.Errorf("weather API returned status %d", resp.StatusCode)
	}

	var body currentWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return models.WeatherReading{}, fmt.Errorf("failed to decode weather response: %w", err)
	}
	if len(body.Weather) == 0 {
		return models.WeatherReading{}, fmt.Errorf("weather response has no conditions")
	}

	return models.WeatherReading{
		TemperatureC:       body.Main.Temp,
		Description:        body.Weather[0].Description,
		HumidityPct:        body.Main.Humidity,
		RainProbabilityPct: body.Clouds.All,
		IsLive:             true,
	}, nil
}
