package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/FrancoGastia/AI-Travel-Companion/internal/models"
)

func TestFetchLiveReading(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "Lima" {
			t.Errorf("query place = %q, want Lima", got)
		}
		if got := r.URL.Query().Get("units"); got != "metric" {
			t.Errorf("units = %q, want metric", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"main": {"temp": 28.3, "humidity": 40},
			"weather": [{"description": "soleado"}],
			"clouds": {"all": 10}
		}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", srv.URL, nil)
	reading := client.Fetch(context.Background(), "Lima")

	want := models.WeatherReading{
		TemperatureC:       28.3,
		Description:        "soleado",
		HumidityPct:        40,
		RainProbabilityPct: 10,
		IsLive:             true,
	}
	if reading != want {
		t.Errorf("Fetch() = %+v, want %+v", reading, want)
	}
}

func TestFetchFallsBackOnStatusError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient("bad-key", srv.URL, nil)
	reading := client.Fetch(context.Background(), "Lima")

	if reading != Fallback() {
		t.Errorf("Fetch() = %+v, want fallback %+v", reading, Fallback())
	}
}

func TestFetchFallsBackOnMalformedBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"weather": []`))
	}))
	defer srv.Close()

	client := NewClient("test-key", srv.URL, nil)
	if reading := client.Fetch(context.Background(), "Lima"); reading.IsLive {
		t.Errorf("expected fallback reading, got live %+v", reading)
	}
}

func TestFetchFallsBackWhenUnreachable(t *testing.T) {
	t.Parallel()

	client := NewClient("test-key", "http://127.0.0.1:1", nil)
	reading := client.Fetch(context.Background(), "Lima")

	want := models.WeatherReading{
		TemperatureC:       22,
		Description:        "parcialmente nublado",
		HumidityPct:        65,
		RainProbabilityPct: 20,
		IsLive:             false,
	}
	if reading != want {
		t.Errorf("Fetch() = %+v, want literal fallback %+v", reading, want)
	}
}
