package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/FrancoGastia/AI-Travel-Companion/internal/session"
)

// HealthChecker handles health check requests
type HealthChecker struct {
	store       *session.Store
	backendMode string
}

// NewHealthChecker creates a new health checker. backendMode names the
// active reply path, "backend" when a chat provider is configured and
// "local" otherwise.
func NewHealthChecker(store *session.Store, backendMode string) *HealthChecker {
	return &HealthChecker{store: store, backendMode: backendMode}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
	ActiveUsers int    `json:"active_users"`
	ChatBackend string `json:"chat_backend"`
}

// HealthCheck handles the /healthz endpoint
func (h *HealthChecker) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		ActiveUsers: h.store.Len(),
		ChatBackend: h.backendMode,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}
