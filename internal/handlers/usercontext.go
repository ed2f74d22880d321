package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/FrancoGastia/AI-Travel-Companion/internal/logger"
	"github.com/FrancoGastia/AI-Travel-Companion/internal/models"
	"github.com/FrancoGastia/AI-Travel-Companion/internal/session"
	"github.com/FrancoGastia/AI-Travel-Companion/internal/validation"
)

// UserContextHandler handles out-of-band trip context updates
type UserContextHandler struct {
	store *session.Store
	log   *zap.Logger
}

// NewUserContextHandler creates a new user context handler
func NewUserContextHandler(store *session.Store, log *zap.Logger) *UserContextHandler {
	return &UserContextHandler{store: store, log: log}
}

// RegisterRoutes registers user context routes
func (h *UserContextHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/user/update", h.Update).Methods("POST")
}

// UpdateRequest represents a context update request
type UpdateRequest struct {
	UserID  string             `json:"user_id"`
	Context models.TripContext `json:"context"`
}

// Update handles POST /api/user/update. It merges the submitted context
// into the session without counting a chat message.
func (h *UserContextHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid request body")
		return
	}
	if err := validation.Validate.Struct(req.Context); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid trip context")
		return
	}

	userID := req.UserID
	if userID == "" {
		userID = AnonymousUserID
	}
	req.Context.UserID = userID

	sess := h.store.UpsertContext(userID, req.Context)

	h.log.Info("user_context_updated",
		zap.String("user_id", logger.SanitizeUserID(userID)),
		zap.String("destination", sess.Context.Destination),
	)

	respondJSON(w, http.StatusOK, map[string]any{
		"user_id": userID,
		"context": sess.Context,
	})
}
