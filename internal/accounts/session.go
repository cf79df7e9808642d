package accounts

import (
	"encoding/json"
	"fmt"

	"finance-tracker/internal/models"
	"finance-tracker/internal/storage"
)

// currentUserKey is the single slot the session snapshot lives under.
const currentUserKey = "currentUser"

// Session holds the authenticated user's snapshot for the lifetime of one
// browser session. The snapshot is a copy of the repository record, never a
// reference: after any transaction mutation it must be replaced with the
// just-persisted record or the two diverge.
type Session struct {
	store storage.Store
}

// NewSession returns a session over the given ephemeral store.
func NewSession(store storage.Store) *Session {
	return &Session{store: store}
}

// Current returns the active user's snapshot, or ErrNotLoggedIn when the
// slot is empty.
func (s *Session) Current() (models.User, error) {
	raw, ok, err := s.store.Get(currentUserKey)
	if err != nil {
		return models.User{}, err
	}
	if !ok {
		return models.User{}, ErrNotLoggedIn
	}

	var u models.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	return u, nil
}

// Set replaces the snapshot with u.
func (s *Session) Set(u models.User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return s.store.Set(currentUserKey, string(raw))
}

// Clear empties the slot. The durable store is untouched.
func (s *Session) Clear() error {
	return s.store.Remove(currentUserKey)
}

// Active reports whether a snapshot is present.
func (s *Session) Active() bool {
	_, ok, err := s.store.Get(currentUserKey)
	return err == nil && ok
}
