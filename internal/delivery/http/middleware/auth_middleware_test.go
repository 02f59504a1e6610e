package middleware

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"credtrack/internal/domain/user"
	"credtrack/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type stubLoader struct {
	users map[uuid.UUID]user.User
}

func (s stubLoader) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := s.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func newAuthApp(jwtSvc jwt.Service, loader IdentityLoader) *fiber.App {
	app := fiber.New()
	app.Use(NewErrorMiddleware(nil).Middleware())
	app.Get("/me", NewAuthMiddleware(jwtSvc, loader).Middleware(), func(c fiber.Ctx) error {
		ident, ok := IdentityFromCtx(c)
		if !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.JSON(fiber.Map{"role": string(ident.Role)})
	})
	return app
}

func getWithAuth(t *testing.T, app *fiber.App, header string) int {
	t.Helper()
	req := httptest.NewRequest("GET", "/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestAuthMiddleware_ResolvesIdentityFromStore(t *testing.T) {
	svc := jwt.NewHMACService("a", "r", time.Hour, time.Hour)
	id := uuid.New()
	loader := stubLoader{users: map[uuid.UUID]user.User{
		// The stored role differs from the token's claim; the store wins.
		id: {ID: id, Email: "s@x.test", Role: user.RoleSchool},
	}}

	tok, err := svc.GenerateAccessToken(id, "s@x.test", "student")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	app := newAuthApp(svc, loader)
	if got := getWithAuth(t, app, "Bearer "+tok); got != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", got)
	}
}

func TestAuthMiddleware_Failures(t *testing.T) {
	svc := jwt.NewHMACService("a", "r", time.Hour, time.Hour)
	id := uuid.New()
	loader := stubLoader{users: map[uuid.UUID]user.User{
		id: {ID: id, Role: user.RoleStudent},
	}}
	app := newAuthApp(svc, loader)

	t.Run("missing header", func(t *testing.T) {
		if got := getWithAuth(t, app, ""); got != fiber.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", got)
		}
	})

	t.Run("malformed header", func(t *testing.T) {
		if got := getWithAuth(t, app, "Token abc"); got != fiber.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", got)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		if got := getWithAuth(t, app, "Bearer garbage"); got != fiber.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", got)
		}
	})

	t.Run("refresh token rejected", func(t *testing.T) {
		tok, err := svc.GenerateRefreshToken(id)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if got := getWithAuth(t, app, "Bearer "+tok); got != fiber.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", got)
		}
	})

	t.Run("deleted subject rejected", func(t *testing.T) {
		tok, err := svc.GenerateAccessToken(uuid.New(), "gone@x.test", "student")
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if got := getWithAuth(t, app, "Bearer "+tok); got != fiber.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", got)
		}
	})
}
