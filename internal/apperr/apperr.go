package apperr

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeConflict     = "CONFLICT"
	CodeNotFound     = "NOT_FOUND"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeBadRequest   = "BAD_REQUEST"
	CodeInternal     = "INTERNAL_ERROR"
)

// Error is the only error type services return to handlers. Internal
// failures are wrapped so nothing below the service boundary leaks out.
type Error struct {
	Code    string
	Status  int
	Message string
	Details interface{}
}

func (e *Error) Error() string {
	return e.Message
}

func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

func (e *Error) WithDetails(details interface{}) *Error {
	e.Details = details
	return e
}

func BadRequest(message string) *Error {
	return New(CodeBadRequest, fiber.StatusBadRequest, message)
}

func Validation(details interface{}) *Error {
	return New(CodeValidation, fiber.StatusUnprocessableEntity, "Validation failed").WithDetails(details)
}

func Conflict(message string) *Error {
	return New(CodeConflict, fiber.StatusConflict, message)
}

func NotFound(message string) *Error {
	return New(CodeNotFound, fiber.StatusNotFound, message)
}

func Unauthorized(message string) *Error {
	return New(CodeUnauthorized, fiber.StatusUnauthorized, message)
}

func Forbidden(message string) *Error {
	return New(CodeForbidden, fiber.StatusForbidden, message)
}

func Internal(message string) *Error {
	return New(CodeInternal, fiber.StatusInternalServerError, message)
}

// From classifies err, keeping an already classified error as-is and
// collapsing anything else into a 500 with a generic message.
func From(err error, fallback string) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(fallback)
}
