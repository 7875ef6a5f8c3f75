// Package session provides the gateway's session state and its pluggable
// storage backends.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
)

// ErrNotFound is returned when a session id is not in the store.
var ErrNotFound = errors.New("session not found")

// Session tracks the negotiated protocol state for one client connection.
// A session is created by initialize, marked initialized by the
// notifications/initialized handshake, and lives until explicitly deleted.
type Session struct {
	ID              string `json:"id"`
	Initialized     bool   `json:"initialized"`
	ProtocolVersion string `json:"protocolVersion"`
}

// Store persists sessions keyed by id. Implementations must be safe for
// concurrent use; a multi-process deployment can substitute a shared
// backend.
type Store interface {
	// Get returns the session with the given id, or ErrNotFound.
	Get(id string) (*Session, error)

	// Put creates or replaces a session.
	Put(s *Session) error

	// Delete removes a session, returning ErrNotFound if absent.
	Delete(id string) error

	// Close releases any resources held by the store.
	Close() error
}

// NewID returns a fresh random session id.
func NewID() string {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		panic("session: cannot read random bytes: " + err.Error())
	}
	return hex.EncodeToString(buf[:])
}
