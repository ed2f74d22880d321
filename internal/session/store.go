// Package session holds the process-wide mapping from user id to last-known
// trip context and activity state. The store is the single shared structure
// between the request handlers and the background scanner, so every access
// goes through the mutex.
package session

import (
	"sync"
	"time"

	"github.com/FrancoGastia/AI-Travel-Companion/internal/models"
	"github.com/jonboulle/clockwork"
)

// Store is a mutex-guarded in-memory session store keyed by the raw
// caller-supplied user id (no case normalization). Sessions live for the
// process lifetime unless evicted by EvictStale.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*models.UserSession
	clock    clockwork.Clock
}

// NewStore creates an empty session store stamping with the real clock.
func NewStore() *Store {
	return NewStoreWithClock(clockwork.NewRealClock())
}

// NewStoreWithClock creates a store with an injected time source for tests.
func NewStoreWithClock(clock clockwork.Clock) *Store {
	return &Store{
		sessions: make(map[string]*models.UserSession),
		clock:    clock,
	}
}

// UpsertChat merges update into the user's stored context, stamps activity
// with the server clock, and increments the message count. Used for
// chat-originated updates only.
func (s *Store) UpsertChat(userID string, update models.TripContext) models.UserSession {
	return s.upsert(userID, update, true)
}

// UpsertContext merges update into the user's stored context and stamps
// activity, without touching the message count.
func (s *Store) UpsertContext(userID string, update models.TripContext) models.UserSession {
	return s.upsert(userID, update, false)
}

func (s *Store) upsert(userID string, update models.TripContext, chatOrigin bool) models.UserSession {
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, exists := s.sessions[userID]
	if !exists {
		sess = &models.UserSession{UserID: userID}
		s.sessions[userID] = sess
	}

	sess.Context = sess.Context.Overlay(update)
	sess.LastActivity = now
	sess.LastUpdate = now
	if chatOrigin {
		sess.MessageCount++
	}

	return *sess
}

// Get returns a copy of the session for userID, if present.
func (s *Store) Get(userID string) (models.UserSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, exists := s.sessions[userID]
	if !exists {
		return models.UserSession{}, false
	}
	return *sess, true
}

// ListActive returns the user ids whose last activity falls within window of now.
func (s *Store) ListActive(now time.Time, window time.Duration) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var active []string
	for id, sess := range s.sessions {
		if now.Sub(sess.LastActivity) < window {
			active = append(active, id)
		}
	}
	return active
}

// EvictStale removes sessions idle for maxIdle or longer and returns how many
// were removed. The scanner runs this periodically to bound store growth.
func (s *Store) EvictStale(now time.Time, maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.LastActivity) >= maxIdle {
			delete(s.sessions, id)
			evicted++
		}
	}
	return evicted
}

// Len returns the number of stored sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
