package client

import (
	"errors"
	"testing"
)

func resolvedSession(role string) *Session {
	return &Session{state: StateResolved, user: User{Role: role}}
}

func TestGuardCheck(t *testing.T) {
	studentGuard := Guard{AllowedRoles: []string{"student"}}
	staffGuard := Guard{AllowedRoles: []string{"school", "admin"}}
	anyAuthGuard := Guard{}

	cases := []struct {
		name    string
		guard   Guard
		session *Session
		want    Decision
	}{
		{"nil session redirects to login", studentGuard, nil, DecisionRedirectLogin},
		{"loading session is pending", studentGuard, &Session{state: StateLoading}, DecisionPending},
		{"errored session redirects to login", studentGuard, &Session{state: StateError, err: errors.New("boom")}, DecisionRedirectLogin},
		{"matching role is allowed", studentGuard, resolvedSession("student"), DecisionAllow},
		{"one of many roles is allowed", staffGuard, resolvedSession("admin"), DecisionAllow},
		{"wrong role is unauthorized", staffGuard, resolvedSession("employer"), DecisionRedirectUnauthorized},
		{"admin is not implicit", studentGuard, resolvedSession("admin"), DecisionRedirectUnauthorized},
		{"empty list admits any resolved user", anyAuthGuard, resolvedSession("employer"), DecisionAllow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.guard.Check(tc.session); got != tc.want {
				t.Fatalf("expected decision %d, got %d", tc.want, got)
			}
		})
	}
}

func TestSessionInvalidate(t *testing.T) {
	s := resolvedSession("student")
	guard := Guard{AllowedRoles: []string{"student"}}

	if got := guard.Check(s); got != DecisionAllow {
		t.Fatalf("expected allow before invalidation, got %d", got)
	}

	s.Invalidate()
	if got := guard.Check(s); got != DecisionPending {
		t.Fatalf("expected pending after invalidation, got %d", got)
	}
	if _, ok := s.User(); ok {
		t.Fatalf("invalidated session must not expose a user")
	}
}
