// Package respond maps business errors from the query layer onto HTTP
// responses so every resource handler reports failures the same way.
package respond

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/vibhu927/pg-next-full/app/config"
	"github.com/vibhu927/pg-next-full/app/models"
)

// Error writes the JSON error body for err. Business errors keep their
// message; anything unclassified is logged and hidden behind a generic 500.
func Error(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Resource not found"})
	case errors.Is(err, models.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	case errors.Is(err, models.ErrRoomUnavailable):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Room is not available"})
	case errors.Is(err, models.ErrRoomMismatch):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Room does not belong to the specified property"})
	case errors.Is(err, models.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Invalid payment status transition"})
	case errors.Is(err, models.ErrEmailTaken):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email is already registered"})
	default:
		config.GetLogger().Error("unexpected failure", zap.Error(err), zap.String("path", c.Path()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong"})
	}
}

// ValidationError writes a 400 with per-field details.
func ValidationError(c *fiber.Ctx, details fiber.Map) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": details})
}
