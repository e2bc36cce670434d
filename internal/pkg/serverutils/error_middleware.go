package serverutils

import (
	"errors"

	"ai-salesagent-be/internal/pkg/apperrors"
	"ai-salesagent-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps application errors to HTTP responses. Expected
// conditions keep their specific code; ProviderError and PersistenceError are
// logged with detail but surfaced generically.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) {
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
			}
			log.Error("http", "unhandled error", map[string]interface{}{
				"path":  ctx.Path(),
				"error": err.Error(),
			})
			return ctx.Status(fiber.StatusInternalServerError).
				JSON(ErrorResponse(fiber.StatusInternalServerError, "internal server error"))
		}

		status := statusFor(appErr.Code)
		message := appErr.Message
		if status == fiber.StatusInternalServerError || status == fiber.StatusBadGateway {
			log.Error("http", "request failed", map[string]interface{}{
				"path":  ctx.Path(),
				"code":  string(appErr.Code),
				"error": appErr.Error(),
			})
			message = "something went wrong"
		}

		return ctx.Status(status).JSON(fiber.Map{
			"success":    false,
			"code":       status,
			"error_type": string(appErr.Code),
			"message":    message,
		})
	}
}

func statusFor(code apperrors.Code) int {
	switch code {
	case apperrors.CodeInvalidInput, apperrors.CodeIngestion:
		return fiber.StatusBadRequest
	case apperrors.CodeNotFound:
		return fiber.StatusNotFound
	case apperrors.CodeExpired:
		return fiber.StatusGone
	case apperrors.CodeBudgetExceeded, apperrors.CodeRateLimited:
		return fiber.StatusTooManyRequests
	case apperrors.CodeProviderUnconfigured:
		return fiber.StatusServiceUnavailable
	case apperrors.CodeProviderError:
		return fiber.StatusBadGateway
	case apperrors.CodePersistence:
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusInternalServerError
	}
}
