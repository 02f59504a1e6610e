package client

// Decision is a guard's answer for a role-gated view.
type Decision int

const (
	// DecisionPending means identity is still resolving; render nothing
	// yet rather than flashing the wrong screen.
	DecisionPending Decision = iota
	DecisionAllow
	// DecisionRedirectLogin covers unauthenticated callers.
	DecisionRedirectLogin
	// DecisionRedirectUnauthorized covers authenticated callers whose
	// role is not on the list.
	DecisionRedirectUnauthorized
)

// Guard gates a view by role. An empty AllowedRoles list admits any
// authenticated user.
type Guard struct {
	AllowedRoles []string
}

// Check decides against the session's current state without blocking.
func (g Guard) Check(s *Session) Decision {
	if s == nil {
		return DecisionRedirectLogin
	}

	switch s.State() {
	case StateLoading:
		return DecisionPending
	case StateError:
		return DecisionRedirectLogin
	}

	u, ok := s.User()
	if !ok {
		return DecisionRedirectLogin
	}

	if len(g.AllowedRoles) == 0 {
		return DecisionAllow
	}
	for _, role := range g.AllowedRoles {
		if role == u.Role {
			return DecisionAllow
		}
	}
	return DecisionRedirectUnauthorized
}
