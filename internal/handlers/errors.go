package handlers

import (
	"errors"

	"vitrine/internal/repositories"
	"vitrine/internal/services"
	"vitrine/internal/storage"
	"vitrine/internal/store"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// statusFor maps a service error to its HTTP status.
func statusFor(err error) int {
	var validationErr *services.ValidationError
	var opErr *repositories.OpError
	switch {
	case errors.As(err, &validationErr):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrDeletionConflict),
		errors.Is(err, services.ErrMutationInFlight),
		errors.Is(err, store.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrHomeTabProtected),
		errors.Is(err, repositories.ErrPermission):
		return fiber.StatusForbidden
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, services.ErrTenantNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrNotLoaded),
		errors.Is(err, services.ErrAIUnavailable),
		errors.Is(err, storage.ErrStorageNotProvisioned):
		return fiber.StatusServiceUnavailable
	case errors.As(err, &opErr),
		errors.Is(err, storage.ErrUploadFailed):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes err with the status statusFor picks for it.
func respondError(c *fiber.Ctx, logger *zap.Logger, message string, err error) error {
	status := statusFor(err)

	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		return c.Status(status).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErr.Fields,
		})
	}

	if status >= fiber.StatusInternalServerError {
		logger.Error(message, zap.String("path", c.Path()), zap.Error(err))
	} else {
		logger.Info(message, zap.String("path", c.Path()), zap.Int("status", status), zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}

func badBody(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid request body",
		"error":   err.Error(),
	})
}
