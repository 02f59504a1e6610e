package middleware

import (
	"context"
	"errors"
	"strings"

	"credtrack/internal/domain/user"
	"credtrack/internal/pkg/jwt"
	"credtrack/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const CtxIdentityKey = "identity"

// Identity is the resolved caller: the token's subject joined with the
// durable user record. Role and tenant always come from the record, not
// from token claims.
type Identity struct {
	UserID   uuid.UUID
	Email    string
	Role     user.Role
	SchoolID *uuid.UUID
	FullName string
}

// IdentityLoader resolves a subject id to its user record; the user
// repository satisfies it.
type IdentityLoader interface {
	GetByID(ctx context.Context, id uuid.UUID) (user.User, error)
}

type AuthMiddleware struct {
	jwt   jwt.Service
	users IdentityLoader
}

func NewAuthMiddleware(jwtSvc jwt.Service, users IdentityLoader) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc, users: users}
}

// Middleware is the identity resolver: bearer token -> claims -> user
// record -> Identity in locals. Every failure is terminal for the request.
func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := bearerTokenFromHeader(c.Get("Authorization"))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, response.KindUnauthenticated, "Unauthorized", nil)
		}

		claims, err := m.jwt.ValidateToken(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return NewAppError(fiber.StatusUnauthorized, response.KindUnauthenticated, "Token expired", err)
			}
			return NewAppError(fiber.StatusUnauthorized, response.KindUnauthenticated, "Invalid token", err)
		}

		if claims.TokenType != jwt.TokenTypeAccess || m.jwt.IsRefreshToken(claims) {
			return NewAppError(fiber.StatusUnauthorized, response.KindUnauthenticated, "Invalid token", nil)
		}

		usr, err := m.users.GetByID(c.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				return NewAppError(fiber.StatusUnauthorized, response.KindUnauthenticated, "Unknown subject", err)
			}
			return NewAppError(fiber.StatusInternalServerError, response.KindInternal, response.MessageInternalServerError, err)
		}

		c.Locals(CtxIdentityKey, Identity{
			UserID:   usr.ID,
			Email:    usr.Email,
			Role:     usr.Role,
			SchoolID: usr.SchoolID,
			FullName: usr.FullName,
		})

		return c.Next()
	}
}

// IdentityFromCtx returns the resolved identity placed by the resolver.
func IdentityFromCtx(c fiber.Ctx) (Identity, bool) {
	id, ok := c.Locals(CtxIdentityKey).(Identity)
	return id, ok
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
