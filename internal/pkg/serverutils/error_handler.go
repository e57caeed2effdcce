package serverutils

import (
	"errors"

	"notetaking-be/internal/pkg/apperror"
	"notetaking-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

const errorModule = "http"

// StatusFor maps an error to the HTTP status returned to the client.
func StatusFor(err error) int {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}

	switch apperror.KindOf(err) {
	case apperror.KindValidation, apperror.KindMissingAttachment:
		return fiber.StatusBadRequest
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindUnsupportedMedia:
		return fiber.StatusUnsupportedMediaType
	case apperror.KindPayloadTooLarge:
		return fiber.StatusRequestEntityTooLarge
	default:
		return fiber.StatusInternalServerError
	}
}

// NewErrorHandler builds the fiber.Config ErrorHandler. It also catches errors raised
// outside the middleware chain, e.g. a body over BodyLimit.
func NewErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		code := StatusFor(err)
		message := err.Error()

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			message = appErr.Message
		}

		if code >= fiber.StatusInternalServerError {
			log.Error(errorModule, "request failed", map[string]interface{}{
				"method": ctx.Method(),
				"path":   ctx.Path(),
				"error":  err,
			})
			// Internal details stay in the log
			message = "Server error"
		}

		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}

// ErrorHandlerMiddleware converts handler errors into JSON responses.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	handle := NewErrorHandler(log)
	return func(ctx *fiber.Ctx) error {
		if err := ctx.Next(); err != nil {
			return handle(ctx, err)
		}
		return nil
	}
}
