package handler

import (
	"errors"
	"strings"

	"credtrack/internal/delivery/http/dto"
	"credtrack/internal/delivery/http/middleware"
	"credtrack/internal/pkg/response"
	"credtrack/internal/pkg/validate"
	authuc "credtrack/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type AuthHandler struct {
	uc *authuc.Service
}

type registerRequest struct {
	Email    string     `json:"email" validate:"required,email"`
	Password string     `json:"password" validate:"required,min=8"`
	Role     string     `json:"role" validate:"required"`
	SchoolID *uuid.UUID `json:"school_id"`
	FullName string     `json:"full_name" validate:"required"`
	Major    string     `json:"major"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

func NewAuthHandler(uc *authuc.Service) *AuthHandler {
	return &AuthHandler{uc: uc}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/refresh", h.Refresh)
}

func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req registerRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.KindValidation, "Invalid request payload", err)
	}
	if fields := validate.Struct(req); len(fields) > 0 {
		return middleware.NewAppError(fiber.StatusBadRequest, response.KindValidation,
			"Invalid fields: "+strings.Join(fields, ", "), nil)
	}

	u, pair, err := h.uc.Register(c.Context(), authuc.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		SchoolID: req.SchoolID,
		FullName: req.FullName,
		Major:    req.Major,
	})
	if err != nil {
		switch {
		case errors.Is(err, authuc.ErrInvalidInput):
			return middleware.NewAppError(fiber.StatusBadRequest, response.KindValidation, "Invalid request payload", err)
		case errors.Is(err, authuc.ErrUnknownSchool):
			return middleware.NewAppError(fiber.StatusBadRequest, response.KindValidation, "Unknown school", err)
		case errors.Is(err, authuc.ErrEmailAlreadyRegistered):
			return middleware.NewAppError(fiber.StatusConflict, response.KindConflict, "Email already registered", err)
		default:
			return middleware.NewAppError(fiber.StatusInternalServerError, response.KindInternal, response.MessageInternalServerError, err)
		}
	}

	return response.Success(c, fiber.StatusCreated, "Account created", dto.AuthResponse{
		User:         dto.NewUserResponse(u),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.KindValidation, "Invalid request payload", err)
	}
	if fields := validate.Struct(req); len(fields) > 0 {
		return middleware.NewAppError(fiber.StatusBadRequest, response.KindValidation,
			"Invalid fields: "+strings.Join(fields, ", "), nil)
	}

	u, pair, err := h.uc.Login(c.Context(), authuc.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		if errors.Is(err, authuc.ErrInvalidCredentials) {
			return middleware.NewAppError(fiber.StatusUnauthorized, response.KindUnauthenticated, "Invalid credentials", err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.KindInternal, response.MessageInternalServerError, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.AuthResponse{
		User:         dto.NewUserResponse(u),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	var req refreshRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.KindValidation, "Invalid request payload", err)
	}
	if fields := validate.Struct(req); len(fields) > 0 {
		return middleware.NewAppError(fiber.StatusBadRequest, response.KindValidation, "Missing refresh token", nil)
	}

	u, pair, err := h.uc.Refresh(c.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, authuc.ErrInvalidCredentials) {
			return middleware.NewAppError(fiber.StatusUnauthorized, response.KindUnauthenticated, "Invalid refresh token", err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.KindInternal, response.MessageInternalServerError, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.AuthResponse{
		User:         dto.NewUserResponse(u),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}
