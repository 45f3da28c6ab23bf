package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/trendwatch/trendwatch/internal/logging"
	"github.com/trendwatch/trendwatch/internal/models"
	"github.com/trendwatch/trendwatch/internal/services"
)

// ErrorHandler returns a custom error handler middleware
func ErrorHandler(logger *logging.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		errCode := "ERROR"
		message := "Internal Server Error"

		var fiberErr *fiber.Error
		var svcErr *services.ServiceError

		switch {
		case errors.As(err, &svcErr):
			code = statusForServiceError(svcErr.Code)
			errCode = svcErr.Code
			message = svcErr.Message
		case errors.As(err, &fiberErr):
			code = fiberErr.Code
			message = fiberErr.Message
		}

		logger.Error("Request error",
			"path", c.Path(),
			"method", c.Method(),
			"status", code,
			"error", err,
		)

		return c.Status(code).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    errCode,
				Message: message,
			},
		})
	}
}

// statusForServiceError maps service error codes to HTTP statuses
func statusForServiceError(code string) int {
	switch code {
	case "INVALID_OPTIONS", "INVALID_REQUEST":
		return fiber.StatusBadRequest
	case "NO_SNAPSHOT", "NO_DATA", "KEYWORD_NOT_FOUND":
		return fiber.StatusNotFound
	case "SUMMARIZER_DISABLED":
		return fiber.StatusServiceUnavailable
	case "SUMMARIZATION_FAILED", "FETCH_FAILED":
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
