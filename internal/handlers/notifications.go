package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/FrancoGastia/AI-Travel-Companion/internal/logger"
	"github.com/FrancoGastia/AI-Travel-Companion/internal/models"
	"github.com/FrancoGastia/AI-Travel-Companion/internal/notify"
	"github.com/FrancoGastia/AI-Travel-Companion/internal/observability"
)

// NotificationsHandler serves on-demand rule evaluations for a user
type NotificationsHandler struct {
	engine  *notify.Engine
	metrics *observability.Metrics
	log     *zap.Logger
}

// NewNotificationsHandler creates a new notifications handler
func NewNotificationsHandler(engine *notify.Engine, metrics *observability.Metrics, log *zap.Logger) *NotificationsHandler {
	return &NotificationsHandler{engine: engine, metrics: metrics, log: log}
}

// RegisterRoutes registers notification routes
func (h *NotificationsHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/notifications/{user_id}", h.List).Methods("GET")
}

// List handles GET /api/notifications/{user_id}. Unknown users get an
// empty list, not an error.
func (h *NotificationsHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]

	notifications := h.engine.EvaluateUser(r.Context(), userID)
	if notifications == nil {
		notifications = []models.Notification{}
	}

	if h.metrics != nil {
		for _, n := range notifications {
			h.metrics.NotificationsEmitted.WithLabelValues(string(n.Kind)).Inc()
		}
	}

	h.log.Debug("notifications_evaluated",
		zap.String("user_id", logger.SanitizeUserID(userID)),
		zap.Int("count", len(notifications)),
	)

	respondJSON(w, http.StatusOK, map[string]any{
		"user_id":       userID,
		"notifications": notifications,
	})
}
