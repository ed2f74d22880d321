package assistant

import (
	"context"

	"github.com/FrancoGastia/AI-Travel-Companion/internal/models"
	"go.uber.org/zap"
)

// Service routes a chat message to the backend when one is configured,
// falling back to the local composer on any backend failure. It never
// returns an error: the composer path always produces a reply.
type Service struct {
	backend  ChatBackend
	composer *Composer
	logger   *zap.Logger
}

// NewService creates a reply service. backend may be nil for composer-only mode.
func NewService(backend ChatBackend, composer *Composer, logger *zap.Logger) *Service {
	return &Service{
		backend:  backend,
		composer: composer,
		logger:   logger,
	}
}

// Reply returns the reply text and its source (SourceBackend or SourceLocal).
func (s *Service) Reply(ctx context.Context, message string, tctx models.TripContext) (string, string) {
	if s.backend != nil {
		reply, err := s.backend.Send(ctx, message, tctx)
		if err == nil && reply != "" {
			return reply, SourceBackend
		}
		if err != nil && s.logger != nil {
			s.logger.Info("chat_backend_unavailable_using_composer",
				zap.Error(err),
			)
		}
	}
	return s.composer.Compose(ctx, message, tctx), SourceLocal
}
