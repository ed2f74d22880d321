package scanner

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/FrancoGastia/AI-Travel-Companion/internal/models"
	"github.com/FrancoGastia/AI-Travel-Companion/internal/notify"
	"github.com/FrancoGastia/AI-Travel-Companion/internal/session"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type coldLookup struct{}

func (coldLookup) Fetch(context.Context, string) models.WeatherReading {
	return models.WeatherReading{TemperatureC: 5, RainProbabilityPct: 20, IsLive: true}
}

// captureDelivery records deliveries and can fail for selected users.
type captureDelivery struct {
	mu       sync.Mutex
	got      map[string][]models.Notification
	failFor  map[string]bool
	failures int
}

func newCaptureDelivery() *captureDelivery {
	return &captureDelivery{
		got:     make(map[string][]models.Notification),
		failFor: make(map[string]bool),
	}
}

func (d *captureDelivery) Deliver(_ context.Context, userID string, notifications []models.Notification) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failFor[userID] {
		d.failures++
		return errors.New("delivery refused")
	}
	d.got[userID] = append(d.got[userID], notifications...)
	return nil
}

func (d *captureDelivery) users() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	users := make([]string, 0, len(d.got))
	for u := range d.got {
		users = append(users, u)
	}
	sort.Strings(users)
	return users
}

func newTestScanner(clock clockwork.Clock, store *session.Store, delivery Delivery, ttl time.Duration) *Scanner {
	engine := notify.NewEngineWithClock(store, coldLookup{}, notify.DefaultRules(), clock)
	return New(store, engine, delivery, Config{
		Interval:     10 * time.Minute,
		ActiveWindow: 2 * time.Hour,
		SessionTTL:   ttl,
		Clock:        clock,
	}, zap.NewNop(), nil)
}

func TestRunCycleDeliversForActiveUsers(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	store := session.NewStoreWithClock(clock)
	store.UpsertChat("a", models.TripContext{Destination: "Lima"})
	store.UpsertChat("b", models.TripContext{Destination: "Cusco"})

	delivery := newCaptureDelivery()
	s := newTestScanner(clock, store, delivery, 0)

	s.runCycle(context.Background())

	assert.Equal(t, []string{"a", "b"}, delivery.users())
	require.Len(t, delivery.got["a"], 1)
	assert.Contains(t, delivery.got["a"][0].Message, "Lima")
}

func TestRunCycleSkipsInactiveUsers(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	store := session.NewStoreWithClock(clock)
	store.UpsertChat("stale", models.TripContext{Destination: "Lima"})
	clock.Advance(3 * time.Hour)
	store.UpsertChat("fresh", models.TripContext{Destination: "Cusco"})

	delivery := newCaptureDelivery()
	s := newTestScanner(clock, store, delivery, 0)

	s.runCycle(context.Background())

	assert.Equal(t, []string{"fresh"}, delivery.users())
}

func TestRunCycleIsolatesDeliveryFailures(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	store := session.NewStoreWithClock(clock)
	store.UpsertChat("bad", models.TripContext{Destination: "Lima"})
	store.UpsertChat("good", models.TripContext{Destination: "Cusco"})

	delivery := newCaptureDelivery()
	delivery.failFor["bad"] = true
	s := newTestScanner(clock, store, delivery, 0)

	s.runCycle(context.Background())

	assert.Equal(t, []string{"good"}, delivery.users(), "failure for one user must not stop the others")
	assert.Equal(t, 1, delivery.failures)
}

func TestRunCycleEvictsOnSchedule(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	store := session.NewStoreWithClock(clock)
	store.UpsertChat("old", models.TripContext{Destination: "Lima"})
	clock.Advance(25 * time.Hour)

	delivery := newCaptureDelivery()
	s := newTestScanner(clock, store, delivery, 24*time.Hour)

	// Eviction runs every sixth cycle
	for i := 0; i < 6; i++ {
		s.runCycle(context.Background())
	}

	assert.Equal(t, 0, store.Len(), "stale session should be evicted by the sixth cycle")
}

func TestStartStopsOnContextCancel(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	store := session.NewStoreWithClock(clock)
	s := newTestScanner(clock, store, newCaptureDelivery(), 0)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Start(ctx)
	}()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("scanner did not stop after context cancellation")
	}
}

func TestLogDeliveryNeverErrors(t *testing.T) {
	t.Parallel()

	d := LogDelivery{Logger: zap.NewNop()}
	err := d.Deliver(context.Background(), "u1", []models.Notification{
		{Kind: models.NotificationWeatherAlert, Priority: models.PriorityHigh, Message: "frío"},
	})
	assert.NoError(t, err)
}
