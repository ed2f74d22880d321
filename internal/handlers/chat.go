package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/FrancoGastia/AI-Travel-Companion/internal/assistant"
	"github.com/FrancoGastia/AI-Travel-Companion/internal/logger"
	"github.com/FrancoGastia/AI-Travel-Companion/internal/models"
	"github.com/FrancoGastia/AI-Travel-Companion/internal/observability"
	"github.com/FrancoGastia/AI-Travel-Companion/internal/session"
	"github.com/FrancoGastia/AI-Travel-Companion/internal/validation"
)

// AnonymousUserID is used when a chat request carries no user id.
const AnonymousUserID = "anonymous"

// ChatHandler handles conversational requests
type ChatHandler struct {
	service *assistant.Service
	store   *session.Store
	metrics *observability.Metrics
	log     *zap.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(service *assistant.Service, store *session.Store, metrics *observability.Metrics, log *zap.Logger) *ChatHandler {
	return &ChatHandler{
		service: service,
		store:   store,
		metrics: metrics,
		log:     log,
	}
}

// RegisterRoutes registers chat routes
func (h *ChatHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/chat", h.SendMessage).Methods("POST")
}

// ChatRequest represents an incoming chat message
type ChatRequest struct {
	UserID  string             `json:"user_id"`
	Message string             `json:"message"`
	Context models.TripContext `json:"context"`
}

// ChatResponse carries the composed reply plus the effective trip context
type ChatResponse struct {
	Response string             `json:"response"`
	Context  models.TripContext `json:"context"`
	Source   string             `json:"source"`
}

// SendMessage handles POST /api/chat
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid request body")
		return
	}
	// A missing message is the empty case, not an error; the composer
	// produces its generic reply for it.
	if err := validation.Validate.Struct(req.Context); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid trip context")
		return
	}

	userID := req.UserID
	if userID == "" {
		userID = AnonymousUserID
	}
	if req.Context.SessionID == "" {
		req.Context.SessionID = uuid.New().String()
	}
	req.Context.UserID = userID

	sess := h.store.UpsertChat(userID, req.Context)

	reply, source := h.service.Reply(r.Context(), req.Message, sess.Context)
	if h.metrics != nil {
		h.metrics.ChatRequests.WithLabelValues(source).Inc()
		h.metrics.ActiveSessions.Set(float64(h.store.Len()))
	}

	h.log.Info("chat_message_handled",
		zap.String("user_id", logger.SanitizeUserID(userID)),
		zap.String("source", source),
		zap.Int("message_count", sess.MessageCount),
	)

	respondJSON(w, http.StatusOK, ChatResponse{
		Response: reply,
		Context:  sess.Context,
		Source:   source,
	})
}
