package user

import (
	"time"

	"github.com/google/uuid"
)

// Role is a closed enum. Anything outside the four values below is
// rejected at the gate, never defaulted.
type Role string

const (
	RoleStudent  Role = "student"
	RoleSchool   Role = "school"
	RoleEmployer Role = "employer"
	RoleAdmin    Role = "admin"
)

// ParseRole maps a stored or submitted string onto the closed enum.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleStudent, RoleSchool, RoleEmployer, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// RequiresSchool reports whether the role must carry a tenant reference.
func (r Role) RequiresSchool() bool {
	return r == RoleStudent || r == RoleSchool
}

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         Role
	SchoolID     *uuid.UUID
	FullName     string
	Major        string
	AvatarCID    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
