// Package scanner drives the periodic evaluation of notification rules for
// active users.
package scanner

import (
	"context"
	"fmt"
	"time"

	"github.com/FrancoGastia/AI-Travel-Companion/internal/models"
	"github.com/FrancoGastia/AI-Travel-Companion/internal/notify"
	"github.com/FrancoGastia/AI-Travel-Companion/internal/observability"
	"github.com/FrancoGastia/AI-Travel-Companion/internal/session"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

const (
	// DefaultInterval between scan cycles
	DefaultInterval = 600 * time.Second
	// DefaultActiveWindow bounds how recently a user must have been active
	DefaultActiveWindow = 7200 * time.Second
	// evictEveryNCycles spaces eviction passes out relative to scan cycles
	evictEveryNCycles = 6
)

// Delivery receives the notifications produced for one user during a cycle.
// Implementations may log, push, or store; a returned error is isolated to
// that user and never aborts the cycle.
type Delivery interface {
	Deliver(ctx context.Context, userID string, notifications []models.Notification) error
}

// LogDelivery writes notifications to the structured log. It is the default
// delivery used when no push or storage collaborator is wired in.
type LogDelivery struct {
	Logger *zap.Logger
}

// Deliver implements Delivery.
func (d LogDelivery) Deliver(_ context.Context, userID string, notifications []models.Notification) error {
	for _, n := range notifications {
		d.Logger.Info("notification_generated",
			zap.String("user_id", userID),
			zap.String("kind", string(n.Kind)),
			zap.String("priority", string(n.Priority)),
			zap.String("message", n.Message),
		)
	}
	return nil
}

// Scanner sweeps the session store on a fixed cadence and evaluates the rule
// engine for every active user. A single instance runs for the process
// lifetime; Start returns when ctx is cancelled.
type Scanner struct {
	store        *session.Store
	engine       *notify.Engine
	delivery     Delivery
	interval     time.Duration
	activeWindow time.Duration
	sessionTTL   time.Duration
	clock        clockwork.Clock
	logger       *zap.Logger
	metrics      *observability.Metrics

	cycles uint64
}

// Config carries the scanner's construction parameters.
type Config struct {
	Interval     time.Duration
	ActiveWindow time.Duration
	SessionTTL   time.Duration
	Clock        clockwork.Clock
}

// New creates a scanner. Zero config fields fall back to defaults; a zero
// SessionTTL disables eviction.
func New(store *session.Store, engine *notify.Engine, delivery Delivery, cfg Config, logger *zap.Logger, metrics *observability.Metrics) *Scanner {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.ActiveWindow <= 0 {
		cfg.ActiveWindow = DefaultActiveWindow
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	return &Scanner{
		store:        store,
		engine:       engine,
		delivery:     delivery,
		interval:     cfg.Interval,
		activeWindow: cfg.ActiveWindow,
		sessionTTL:   cfg.SessionTTL,
		clock:        cfg.Clock,
		logger:       logger,
		metrics:      metrics,
	}
}

// Start runs the scan loop until ctx is cancelled. Cycle failures are logged
// and never terminate the loop.
func (s *Scanner) Start(ctx context.Context) error {
	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("scanner_started",
		zap.Duration("interval", s.interval),
		zap.Duration("active_window", s.activeWindow),
	)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scanner_stopped")
			return ctx.Err()
		case <-ticker.Chan():
			s.runCycle(ctx)
		}
	}
}

// runCycle evaluates every active user once and delivers the results.
// Exposed within the package so tests can drive cycles without the ticker.
func (s *Scanner) runCycle(ctx context.Context) {
	now := s.clock.Now()
	active := s.store.ListActive(now, s.activeWindow)

	for _, userID := range active {
		if err := s.scanUser(ctx, userID, now); err != nil {
			s.logger.Warn("scan_user_failed",
				zap.String("user_id", userID),
				zap.Error(err),
			)
			if s.metrics != nil {
				s.metrics.ScannerUserErrors.Inc()
			}
			// Next user; one failure never aborts the cycle
		}
	}

	s.cycles++
	if s.metrics != nil {
		s.metrics.ScannerCycles.Inc()
		s.metrics.ActiveSessions.Set(float64(s.store.Len()))
	}

	if s.sessionTTL > 0 && s.cycles%evictEveryNCycles == 0 {
		evicted := s.store.EvictStale(now, s.sessionTTL)
		if evicted > 0 {
			s.logger.Info("evicted_stale_sessions", zap.Int("count", evicted))
			if s.metrics != nil {
				s.metrics.SessionsEvicted.Add(float64(evicted))
			}
		}
	}
}

// scanUser evaluates one user's rules and hands the result to delivery.
// Panics from rule evaluation are converted to errors so a single bad
// session cannot take the loop down.
func (s *Scanner) scanUser(ctx context.Context, userID string, now time.Time) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic scanning user: %v", r)
		}
	}()

	sess, ok := s.store.Get(userID)
	if !ok {
		return nil
	}

	notifications := s.engine.Evaluate(ctx, sess, now)
	if len(notifications) == 0 {
		return nil
	}

	if s.metrics != nil {
		for _, n := range notifications {
			s.metrics.NotificationsEmitted.WithLabelValues(string(n.Kind)).Inc()
		}
	}

	if err := s.delivery.Deliver(ctx, userID, notifications); err != nil {
		return fmt.Errorf("failed to deliver notifications: %w", err)
	}
	return nil
}
