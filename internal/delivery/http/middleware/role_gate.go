package middleware

import (
	"credtrack/internal/domain/user"
	"credtrack/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// RequireRoles gates a route group to an allow-list of roles. An empty
// list means any authenticated caller. Membership is exact: an absent or
// unrecognized role is rejected, never defaulted. Must run after the
// identity resolver.
func RequireRoles(roles ...user.Role) fiber.Handler {
	allowed := make(map[user.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c fiber.Ctx) error {
		ident, ok := IdentityFromCtx(c)
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, response.KindUnauthenticated, "Unauthorized", nil)
		}
		if !ident.Role.Valid() {
			return NewAppError(fiber.StatusForbidden, response.KindForbidden, "Forbidden", nil)
		}
		if len(allowed) == 0 {
			return c.Next()
		}
		if _, ok := allowed[ident.Role]; !ok {
			return NewAppError(fiber.StatusForbidden, response.KindForbidden, "Forbidden", nil)
		}
		return c.Next()
	}
}
