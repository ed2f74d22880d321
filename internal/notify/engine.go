// Package notify computes advisory notifications for active users from
// weather thresholds and time-of-day rules.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/FrancoGastia/AI-Travel-Companion/internal/models"
	"github.com/FrancoGastia/AI-Travel-Companion/internal/session"
	"github.com/FrancoGastia/AI-Travel-Companion/internal/weather"
	"github.com/jonboulle/clockwork"
)

// Engine evaluates notification rules against stored sessions. Evaluations
// are pure given the session, the clock reading, and the weather reading.
// Nothing is mutated and nothing is deduplicated; calling twice within a
// trigger hour yields the same notifications twice.
type Engine struct {
	store   *session.Store
	weather weather.Lookup
	rules   Rules
	clock   clockwork.Clock
}

// NewEngine creates a rule engine over the given store and weather lookup.
func NewEngine(store *session.Store, lookup weather.Lookup, rules Rules) *Engine {
	return NewEngineWithClock(store, lookup, rules, clockwork.NewRealClock())
}

// NewEngineWithClock creates an engine with an injected time source for tests.
func NewEngineWithClock(store *session.Store, lookup weather.Lookup, rules Rules, clock clockwork.Clock) *Engine {
	return &Engine{
		store:   store,
		weather: lookup,
		rules:   rules,
		clock:   clock,
	}
}

// EvaluateUser evaluates the rules for a stored user. An unknown user id
// yields an empty result, not an error.
func (e *Engine) EvaluateUser(ctx context.Context, userID string) []models.Notification {
	sess, ok := e.store.Get(userID)
	if !ok {
		return nil
	}
	return e.Evaluate(ctx, sess, e.clock.Now())
}

// Evaluate applies every rule to the session at the given instant. Weather
// rules come first (one reading, three independent checks against it), then
// hour rules in ascending trigger order.
func (e *Engine) Evaluate(ctx context.Context, sess models.UserSession, now time.Time) []models.Notification {
	var notifications []models.Notification

	if dest := sess.Context.Destination; dest != "" {
		reading := e.weather.Fetch(ctx, dest)

		if reading.TemperatureC < e.rules.TempLowC {
			notifications = append(notifications, models.Notification{
				Kind:     models.NotificationWeatherAlert,
				Priority: models.PriorityHigh,
				Message:  fmt.Sprintf("🧥 Temperatura baja: %g°C en %s. Recomendación: Lleva abrigo.", reading.TemperatureC, dest),
			})
		}
		if reading.TemperatureC > e.rules.TempHighC {
			notifications = append(notifications, models.Notification{
				Kind:     models.NotificationWeatherAlert,
				Priority: models.PriorityHigh,
				Message:  fmt.Sprintf("🌡️ Temperatura alta: %g°C en %s. Mantente hidratado y usa protector solar.", reading.TemperatureC, dest),
			})
		}
		if reading.RainProbabilityPct > e.rules.RainPct {
			notifications = append(notifications, models.Notification{
				Kind:     models.NotificationWeatherAlert,
				Priority: models.PriorityMedium,
				Message:  fmt.Sprintf("☔ Probabilidad de lluvia: %d%% en %s. Lleva paraguas.", reading.RainProbabilityPct, dest),
			})
		}
	}

	// Hour triggers fire on exact hour equality, not a window, and only
	// while the user is exploring.
	if sess.Context.TravelPhase == models.PhaseExploring {
		currentHour := now.Hour()
		for _, hour := range e.rules.triggerHours() {
			if currentHour == hour {
				notifications = append(notifications, models.Notification{
					Kind:     models.NotificationRecommendation,
					Priority: models.PriorityLow,
					Message:  e.rules.HourMessages[hour],
				})
			}
		}
	}

	return notifications
}
