// Package identity implements the admin passphrase gate. This is a
// convenience gate for a single-operator storefront, not a security
// control: one shared static passphrase, opaque in-memory session
// tokens, no expiry, no lockout.
package identity

import (
	"crypto/subtle"
	"sync"

	"github.com/google/uuid"
	"github.com/souvikdhua/cosmeticking/internal/domain/shared"
)

// ErrBadPassphrase is returned on a failed login attempt.
var ErrBadPassphrase = shared.NewDomainError("UNAUTHORIZED", "Incorrect password")

// Service validates the shared passphrase and tracks admin sessions.
type Service struct {
	passphrase string

	mu       sync.Mutex
	sessions map[string]struct{}
}

// NewService creates the gate for the configured passphrase.
func NewService(passphrase string) *Service {
	return &Service{
		passphrase: passphrase,
		sessions:   make(map[string]struct{}),
	}
}

// Login exchanges the passphrase for an admin session token.
func (s *Service) Login(passphrase string) (string, error) {
	if subtle.ConstantTimeCompare([]byte(passphrase), []byte(s.passphrase)) != 1 {
		return "", ErrBadPassphrase
	}
	token := uuid.NewString()
	s.mu.Lock()
	s.sessions[token] = struct{}{}
	s.mu.Unlock()
	return token, nil
}

// Logout invalidates the token. Unknown tokens are a no-op.
func (s *Service) Logout(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// Valid reports whether the token belongs to an active admin session.
func (s *Service) Valid(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[token]
	return ok
}
