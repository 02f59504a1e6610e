package client

import (
	"context"
	"sync"
)

// SessionState tracks identity resolution. A session starts loading,
// then either resolves to a user or fails.
type SessionState int

const (
	StateLoading SessionState = iota
	StateResolved
	StateError
)

// Session resolves the current identity once and caches the outcome.
// Guards consult it instead of re-hitting the API per decision.
type Session struct {
	client *Client

	mu    sync.RWMutex
	state SessionState
	user  User
	err   error
}

func NewSession(c *Client) *Session {
	return &Session{client: c, state: StateLoading}
}

// Resolve refreshes the token pair to learn who the caller is. A failed
// refresh moves the session to StateError; guards then redirect to
// login rather than deny outright.
func (s *Session) Resolve(ctx context.Context) (User, error) {
	u, err := s.client.Refresh(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateError
		s.err = err
		return User{}, err
	}
	s.state = StateResolved
	s.user = u
	s.err = nil
	return u, nil
}

func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Session) User() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user, s.state == StateResolved
}

func (s *Session) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Invalidate drops the resolved identity, e.g. after a 401 on a call.
func (s *Session) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateLoading
	s.user = User{}
	s.err = nil
}
