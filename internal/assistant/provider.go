// Package assistant produces travel replies: an external conversational AI
// backend when configured and reachable, a deterministic local composer
// otherwise.
package assistant

import (
	"context"

	"github.com/FrancoGastia/AI-Travel-Companion/internal/models"
)

// ChatBackend is the interface for external conversational AI backends.
// Implementations must honor ctx deadlines; any error is treated as
// "backend unavailable" and routed to the composer.
type ChatBackend interface {
	Send(ctx context.Context, message string, tctx models.TripContext) (string, error)
}

// Reply source labels, surfaced to callers and metrics.
const (
	SourceBackend = "backend"
	SourceLocal   = "local"
)
