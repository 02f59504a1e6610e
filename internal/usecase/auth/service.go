package auth

import (
	"context"
	"errors"
	"strings"

	"credtrack/internal/domain/school"
	"credtrack/internal/domain/user"
	"credtrack/internal/pkg/jwt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrUnknownSchool          = errors.New("unknown school")
	ErrInternal               = errors.New("internal error")
)

type RegisterInput struct {
	Email    string
	Password string
	Role     string
	SchoolID *uuid.UUID
	FullName string
	Major    string
}

type LoginInput struct {
	Email    string
	Password string
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type Service struct {
	users   user.Repository
	schools school.Repository
	jwt     jwt.Service
}

func NewService(users user.Repository, schools school.Repository, jwtSvc jwt.Service) *Service {
	return &Service{users: users, schools: schools, jwt: jwtSvc}
}

// Register creates an account for the three self-service roles. Admin
// accounts exist only through the seeder.
func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, TokenPair, error) {
	email := normalizeEmail(in.Email)
	if email == "" || !isValidPassword(in.Password) {
		return user.User{}, TokenPair{}, ErrInvalidInput
	}

	role, ok := user.ParseRole(in.Role)
	if !ok || role == user.RoleAdmin {
		return user.User{}, TokenPair{}, ErrInvalidInput
	}

	var schoolID *uuid.UUID
	if role.RequiresSchool() {
		if in.SchoolID == nil {
			return user.User{}, TokenPair{}, ErrInvalidInput
		}
		exists, err := s.schools.ExistsByID(ctx, *in.SchoolID)
		if err != nil {
			return user.User{}, TokenPair{}, ErrInternal
		}
		if !exists {
			return user.User{}, TokenPair{}, ErrUnknownSchool
		}
		schoolID = in.SchoolID
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return user.User{}, TokenPair{}, ErrInternal
	}
	if exists {
		return user.User{}, TokenPair{}, ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, TokenPair{}, ErrInternal
	}

	u := user.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		SchoolID:     schoolID,
		FullName:     strings.TrimSpace(in.FullName),
		Major:        strings.TrimSpace(in.Major),
	}

	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return user.User{}, TokenPair{}, ErrEmailAlreadyRegistered
		}
		return user.User{}, TokenPair{}, ErrInternal
	}

	pair, err := s.issueTokens(u)
	if err != nil {
		return user.User{}, TokenPair{}, ErrInternal
	}
	return sanitize(u), pair, nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, TokenPair, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return user.User{}, TokenPair{}, ErrInvalidCredentials
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, TokenPair{}, ErrInvalidCredentials
		}
		return user.User{}, TokenPair{}, ErrInternal
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) != nil {
		return user.User{}, TokenPair{}, ErrInvalidCredentials
	}

	pair, err := s.issueTokens(u)
	if err != nil {
		return user.User{}, TokenPair{}, ErrInternal
	}
	return sanitize(u), pair, nil
}

// Refresh exchanges a refresh token for a fresh pair, re-reading the user
// row so revoked accounts and changed roles take effect immediately.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (user.User, TokenPair, error) {
	claims, err := s.jwt.ValidateToken(refreshToken)
	if err != nil || !s.jwt.IsRefreshToken(claims) {
		return user.User{}, TokenPair{}, ErrInvalidCredentials
	}

	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, TokenPair{}, ErrInvalidCredentials
		}
		return user.User{}, TokenPair{}, ErrInternal
	}

	pair, err := s.issueTokens(u)
	if err != nil {
		return user.User{}, TokenPair{}, ErrInternal
	}
	return sanitize(u), pair, nil
}

func (s *Service) issueTokens(u user.User) (TokenPair, error) {
	access, err := s.jwt.GenerateAccessToken(u.ID, u.Email, string(u.Role))
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.jwt.GenerateRefreshToken(u.ID)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isValidPassword(pw string) bool {
	return len(strings.TrimSpace(pw)) >= 8
}

func sanitize(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
