package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/FrancoGastia/AI-Travel-Companion/internal/assistant"
	"github.com/FrancoGastia/AI-Travel-Companion/internal/models"
	"github.com/FrancoGastia/AI-Travel-Companion/internal/notify"
	"github.com/FrancoGastia/AI-Travel-Companion/internal/observability"
	"github.com/FrancoGastia/AI-Travel-Companion/internal/session"
)

type stubLookup struct {
	reading models.WeatherReading
	calls   int
}

func (s *stubLookup) Fetch(ctx context.Context, place string) models.WeatherReading {
	s.calls++
	return s.reading
}

func newTestRouter(t *testing.T) (*mux.Router, *session.Store, *stubLookup) {
	t.Helper()

	lookup := &stubLookup{reading: models.WeatherReading{
		TemperatureC:       28,
		Description:        "soleado",
		HumidityPct:        40,
		RainProbabilityPct: 10,
		IsLive:             true,
	}}
	store := session.NewStore()
	service := assistant.NewService(nil, assistant.NewComposer(lookup), zap.NewNop())
	engine := notify.NewEngine(store, lookup, notify.DefaultRules())
	metrics := observability.NewMetricsForTesting()

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	NewChatHandler(service, store, metrics, zap.NewNop()).RegisterRoutes(api)
	NewUserContextHandler(store, zap.NewNop()).RegisterRoutes(api)
	NewNotificationsHandler(engine, metrics, zap.NewNop()).RegisterRoutes(api)
	NewWeatherHandler(lookup, metrics, zap.NewNop()).RegisterRoutes(api)
	r.HandleFunc("/healthz", NewHealthChecker(store, "local").HealthCheck).Methods("GET")
	return r, store, lookup
}

func doJSON(t *testing.T, router *mux.Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	Error     string          `json:"error"`
	Timestamp string          `json:"timestamp"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env
}

func TestChatComposesReplyAndTracksSession(t *testing.T) {
	router, store, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/chat", map[string]any{
		"user_id": "maria",
		"message": "¿Qué clima hace?",
		"context": map[string]any{"destination": "Lima", "travel_phase": "exploring"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)

	var resp ChatResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Contains(t, resp.Response, "Lima")
	assert.Contains(t, resp.Response, "28")
	assert.Equal(t, assistant.SourceLocal, resp.Source)
	assert.Equal(t, "Lima", resp.Context.Destination)
	assert.NotEmpty(t, resp.Context.SessionID)

	sess, ok := store.Get("maria")
	require.True(t, ok)
	assert.Equal(t, 1, sess.MessageCount)
}

func TestChatDefaultsAnonymousUser(t *testing.T) {
	router, store, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/chat", map[string]any{
		"message": "hola",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	_, ok := store.Get(AnonymousUserID)
	assert.True(t, ok)
}

func TestChatEmptyMessageGetsGenericReply(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/chat", map[string]any{
		"user_id": "maria",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)

	var resp ChatResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.NotEmpty(t, resp.Response)
	assert.Equal(t, assistant.SourceLocal, resp.Source)
}

func TestChatRejectsInvalidTravelerType(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/chat", map[string]any{
		"user_id": "maria",
		"message": "hola",
		"context": map[string]any{"traveler_type": "astronaut"},
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserUpdateMergesWithoutCountingMessage(t *testing.T) {
	router, store, _ := newTestRouter(t)

	doJSON(t, router, http.MethodPost, "/api/chat", map[string]any{
		"user_id": "maria",
		"message": "hola",
		"context": map[string]any{"destination": "Lima"},
	})

	rec := doJSON(t, router, http.MethodPost, "/api/user/update", map[string]any{
		"user_id": "maria",
		"context": map[string]any{"travel_phase": "exploring"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	sess, ok := store.Get("maria")
	require.True(t, ok)
	assert.Equal(t, 1, sess.MessageCount)
	assert.Equal(t, "Lima", sess.Context.Destination)
	assert.Equal(t, models.PhaseExploring, sess.Context.TravelPhase)
}

func TestNotificationsUnknownUserEmptyList(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/notifications/nobody", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	var data struct {
		UserID        string                `json:"user_id"`
		Notifications []models.Notification `json:"notifications"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "nobody", data.UserID)
	assert.Empty(t, data.Notifications)
	assert.NotNil(t, data.Notifications)
}

func TestNotificationsColdDestination(t *testing.T) {
	router, store, lookup := newTestRouter(t)
	lookup.reading = models.WeatherReading{TemperatureC: 5, Description: "nublado", RainProbabilityPct: 10, IsLive: true}

	store.UpsertChat("maria", models.TripContext{Destination: "Ushuaia"})

	rec := doJSON(t, router, http.MethodGet, "/api/notifications/maria", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	var data struct {
		Notifications []models.Notification `json:"notifications"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data.Notifications, 1)
	assert.Equal(t, models.NotificationWeatherAlert, data.Notifications[0].Kind)
	assert.Equal(t, models.PriorityHigh, data.Notifications[0].Priority)
}

func TestWeatherEndpoint(t *testing.T) {
	router, _, lookup := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/weather/Lima", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, lookup.calls)

	env := decodeEnvelope(t, rec)
	var data struct {
		City    string                `json:"city"`
		Weather models.WeatherReading `json:"weather"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "Lima", data.City)
	assert.Equal(t, float64(28), data.Weather.TemperatureC)
	assert.True(t, data.Weather.IsLive)
}

func TestHealthCheck(t *testing.T) {
	router, store, _ := newTestRouter(t)
	store.UpsertChat("maria", models.TripContext{})

	rec := doJSON(t, router, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, 1, resp.ActiveUsers)
	assert.Equal(t, "local", resp.ChatBackend)
}
