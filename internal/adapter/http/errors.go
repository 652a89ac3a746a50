package http

import (
	"errors"
	"log/slog"

	"resume-builder/internal/domain"

	"github.com/gofiber/fiber/v2"
)

// errorPayload is the body of every error response.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func requestIDFromCtx(c *fiber.Ctx) string {
	if s, ok := c.Locals(RequestIDLocalKey).(string); ok {
		return s
	}
	return ""
}

// writeError writes an error response. message must be safe to show.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(errorPayload{
		RequestID: requestIDFromCtx(c),
		Error:     errorEnvelope{Code: code, Message: message},
	})
}

// writeDomainError maps editor errors onto HTTP statuses.
func writeDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, domain.ErrUnknownList):
		return writeError(c, fiber.StatusBadRequest, "UNKNOWN_LIST", err.Error())
	case errors.Is(err, domain.ErrUnknownField):
		return writeError(c, fiber.StatusBadRequest, "UNKNOWN_FIELD", err.Error())
	case errors.Is(err, domain.ErrInvalidSection):
		return writeError(c, fiber.StatusBadRequest, "INVALID_SECTION", err.Error())
	case errors.Is(err, domain.ErrInvalidSnapshot):
		return writeError(c, fiber.StatusBadRequest, "INVALID_SNAPSHOT", "snapshot does not match the expected shape")
	}
	slog.Error("request failed", "request_id", requestIDFromCtx(c), "path", c.Path(), "error", err)
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "PAYLOAD_TOO_LARGE", "request body too large")
		default:
			slog.Error("unhandled error", "request_id", requestIDFromCtx(c), "path", c.Path(), "error", err)
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
