// Package session holds the identity of the signed-in account for the
// lifetime of the process. There is no sign-out: a later SignIn replaces the
// previous principal.
package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/markbook/internal/common"
	"github.com/dmitrijs2005/markbook/internal/models"
)

// Session is the single authentication slot. The zero value is empty and ready
// to use.
type Session struct {
	mu    sync.RWMutex
	email string
	id    string
}

func New() *Session {
	return &Session{}
}

// SignIn records account as the current principal and returns the new
// session ID. Callers must pass an authenticated account.
func (s *Session) SignIn(account models.Account) string {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.email = account.Email
	s.id = id
	return id
}

// Current returns the signed-in email, if any.
func (s *Session) Current() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.email, s.email != ""
}

// ID returns the session ID of the current sign-in, empty when nobody is
// signed in.
func (s *Session) ID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id
}

// RequireAuthenticated returns the signed-in email or common.ErrUnauthenticated.
func (s *Session) RequireAuthenticated() (string, error) {
	email, ok := s.Current()
	if !ok {
		return "", common.ErrUnauthenticated
	}
	return email, nil
}
