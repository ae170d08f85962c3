package apperr

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// Kind classifies an error into one of the transport-level outcomes.
type Kind int

const (
	KindValidation Kind = iota // 400 malformed or missing input
	KindAuth                   // 401 missing/invalid token or bad credentials
	KindForbidden              // 403 authenticated but not authorized
	KindNotFound               // 404
	KindConflict               // 409 duplicate unique field, duplicate like/follow
)

// Error is the single error type handlers return. The centralized
// ErrorHandler translates its Kind into a status code.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Status maps the error kind to an HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation:
		return fiber.StatusBadRequest
	case KindAuth:
		return fiber.StatusUnauthorized
	case KindForbidden:
		return fiber.StatusForbidden
	case KindNotFound:
		return fiber.StatusNotFound
	case KindConflict:
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func Auth(message string) *Error {
	return &Error{Kind: KindAuth, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// ErrorHandler is installed as the fiber app's ErrorHandler. It is the only
// place errors are translated into responses; every error body has the
// uniform shape {"message": "..."}. Unexpected errors are logged server-side
// and surfaced as a generic 500 without internal detail.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return c.Status(appErr.Status()).JSON(fiber.Map{"message": appErr.Message})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"message": fiberErr.Message})
	}

	log.Errorf("unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
}
