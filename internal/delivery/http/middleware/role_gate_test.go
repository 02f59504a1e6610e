package middleware

import (
	"net/http/httptest"
	"testing"

	"credtrack/internal/domain/user"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

func newGateApp(gate fiber.Handler, ident *Identity) *fiber.App {
	app := fiber.New()
	app.Use(NewErrorMiddleware(nil).Middleware())
	app.Get("/probe",
		func(c fiber.Ctx) error {
			if ident != nil {
				c.Locals(CtxIdentityKey, *ident)
			}
			return c.Next()
		},
		gate,
		func(c fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)
	return app
}

func probeStatus(t *testing.T, app *fiber.App) int {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", "/probe", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestRequireRoles_Matrix(t *testing.T) {
	cases := []struct {
		name    string
		allowed []user.Role
		role    user.Role
		want    int
	}{
		{"exact match", []user.Role{user.RoleStudent}, user.RoleStudent, fiber.StatusOK},
		{"one of many", []user.Role{user.RoleSchool, user.RoleAdmin}, user.RoleAdmin, fiber.StatusOK},
		{"wrong role", []user.Role{user.RoleEmployer}, user.RoleStudent, fiber.StatusForbidden},
		{"admin is not implicit", []user.Role{user.RoleStudent}, user.RoleAdmin, fiber.StatusForbidden},
		{"empty list admits any valid role", nil, user.RoleEmployer, fiber.StatusOK},
		{"invalid role never passes", nil, user.Role("superuser"), fiber.StatusForbidden},
		{"empty role never passes", []user.Role{user.RoleStudent}, user.Role(""), fiber.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ident := Identity{UserID: uuid.New(), Role: tc.role}
			app := newGateApp(RequireRoles(tc.allowed...), &ident)
			if got := probeStatus(t, app); got != tc.want {
				t.Fatalf("status = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestRequireRoles_NoIdentity(t *testing.T) {
	app := newGateApp(RequireRoles(user.RoleStudent), nil)
	if got := probeStatus(t, app); got != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", got)
	}
}
