package response

import "github.com/gofiber/fiber/v3"

// SemanticResponse is the single envelope both success and error paths use.
// Kind is only populated on errors so clients can branch without parsing
// message strings.
type SemanticResponse struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Kind    string      `json:"kind,omitempty"`
	Data    interface{} `json:"data"`
}

// Error kinds surfaced to clients.
const (
	KindUnauthenticated   = "UNAUTHENTICATED"
	KindForbidden         = "FORBIDDEN"
	KindNotFound          = "NOT_FOUND"
	KindValidation        = "VALIDATION"
	KindCrossTenant       = "CROSS_TENANT"
	KindJobLocked         = "JOB_LOCKED"
	KindIncompleteRubric  = "INCOMPLETE_RUBRIC"
	KindInvalidTransition = "INVALID_TRANSITION"
	KindConflict          = "CONFLICT"
	KindInternal          = "INTERNAL"
)

const (
	MessageOK                  = "ok"
	MessageBadRequest          = "bad request"
	MessageUnauthorized        = "unauthorized"
	MessageForbidden           = "forbidden"
	MessageNotFound            = "not found"
	MessageConflict            = "conflict"
	MessageUnprocessableEntity = "unprocessable entity"
	MessageInternalServerError = "internal server error"
	MessageError               = "error"
)

func Success(c fiber.Ctx, status int, message string, data interface{}) error {
	st := normalizeStatus(status)
	msg := normalizeMessage(message, st)
	return c.Status(st).JSON(SemanticResponse{Status: st, Message: msg, Data: data})
}

func Error(c fiber.Ctx, status int, kind, message string, data interface{}) error {
	st := normalizeStatus(status)
	msg := normalizeMessage(message, st)
	if kind == "" {
		kind = defaultKindForStatus(st)
	}
	return c.Status(st).JSON(SemanticResponse{Status: st, Message: msg, Kind: kind, Data: data})
}

func normalizeStatus(status int) int {
	if status < 100 || status > 599 {
		return fiber.StatusInternalServerError
	}
	return status
}

func normalizeMessage(message string, status int) string {
	if message != "" {
		return message
	}
	return defaultMessageForStatus(status)
}

func defaultMessageForStatus(status int) string {
	switch status {
	case fiber.StatusOK:
		return MessageOK
	case fiber.StatusBadRequest:
		return MessageBadRequest
	case fiber.StatusUnauthorized:
		return MessageUnauthorized
	case fiber.StatusForbidden:
		return MessageForbidden
	case fiber.StatusNotFound:
		return MessageNotFound
	case fiber.StatusConflict:
		return MessageConflict
	case fiber.StatusUnprocessableEntity:
		return MessageUnprocessableEntity
	default:
		if status >= 500 {
			return MessageInternalServerError
		}
		return MessageError
	}
}

func defaultKindForStatus(status int) string {
	switch status {
	case fiber.StatusUnauthorized:
		return KindUnauthenticated
	case fiber.StatusForbidden:
		return KindForbidden
	case fiber.StatusNotFound:
		return KindNotFound
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
		return KindValidation
	case fiber.StatusConflict:
		return KindConflict
	default:
		return KindInternal
	}
}
