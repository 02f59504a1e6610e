package handler

import (
	"credtrack/internal/delivery/http/middleware"
	"credtrack/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

func identity(c fiber.Ctx) (middleware.Identity, error) {
	ident, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return middleware.Identity{}, middleware.NewAppError(fiber.StatusUnauthorized, response.KindUnauthenticated, "Unauthorized", nil)
	}
	return ident, nil
}

// tenantID is for handlers behind a school/student gate, where a missing
// tenant ref means a malformed account rather than a client error.
func tenantID(ident middleware.Identity) (uuid.UUID, error) {
	if ident.SchoolID == nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusForbidden, response.KindForbidden, "No school assigned", nil)
	}
	return *ident.SchoolID, nil
}

func uuidParam(c fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, response.KindValidation, "Invalid "+name, err)
	}
	return id, nil
}
