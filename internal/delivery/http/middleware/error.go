package middleware

import (
	"errors"
	"log"

	"credtrack/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type AppError struct {
	StatusCode int
	Kind       string
	Message    string
	Data       interface{}
	Cause      error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func NewAppError(statusCode int, kind, message string, cause error) *AppError {
	return &AppError{StatusCode: statusCode, Kind: kind, Message: message, Cause: cause}
}

type ErrorMiddleware struct {
	logger *log.Logger
}

func NewErrorMiddleware(logger *log.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{logger: logger}
}

func (m *ErrorMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				if m != nil && m.logger != nil {
					m.logger.Printf("panic recovered: %v", r)
				}
				err = response.Error(c, fiber.StatusInternalServerError, response.KindInternal, response.MessageInternalServerError, nil)
			}
		}()

		err = c.Next()
		if err == nil {
			return nil
		}

		status, kind, msg, data := normalizeError(err)
		if status >= 500 && m != nil && m.logger != nil {
			m.logger.Printf("request failed: %v", err)
		}
		return response.Error(c, status, kind, msg, data)
	}
}

func normalizeError(err error) (int, string, string, interface{}) {
	if err == nil {
		return fiber.StatusInternalServerError, response.KindInternal, response.MessageInternalServerError, nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		status := appErr.StatusCode
		if status <= 0 || status >= 500 {
			return fiber.StatusInternalServerError, response.KindInternal, response.MessageInternalServerError, nil
		}
		return status, appErr.Kind, appErr.Message, appErr.Data
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status := fiberErr.Code
		if status <= 0 || status >= 500 {
			return fiber.StatusInternalServerError, response.KindInternal, response.MessageInternalServerError, nil
		}
		return status, "", fiberErr.Message, nil
	}

	return fiber.StatusInternalServerError, response.KindInternal, response.MessageInternalServerError, nil
}
