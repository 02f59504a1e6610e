package dto

import (
	"time"

	"credtrack/internal/domain/user"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	SchoolID  *uuid.UUID `json:"school_id,omitempty"`
	FullName  string     `json:"full_name"`
	Major     string     `json:"major,omitempty"`
	AvatarCID *string    `json:"avatar_cid,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func NewUserResponse(u user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Role:      string(u.Role),
		SchoolID:  u.SchoolID,
		FullName:  u.FullName,
		Major:     u.Major,
		AvatarCID: u.AvatarCID,
		CreatedAt: u.CreatedAt,
	}
}

func NewUserResponses(users []user.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}

type AuthResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}
