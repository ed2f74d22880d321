package models

import "time"

// UserSession is the last-known state for a user, keyed by the caller-supplied
// user id. Lives in the in-memory session store for the process lifetime.
type UserSession struct {
	UserID       string      `json:"user_id"`
	Context      TripContext `json:"context"`
	LastActivity time.Time   `json:"last_activity"`
	LastUpdate   time.Time   `json:"last_update"`
	MessageCount int         `json:"message_count"`
}
