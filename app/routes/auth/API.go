package auth

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/vibhu927/pg-next-full/app/config"
	"github.com/vibhu927/pg-next-full/app/database"
	"github.com/vibhu927/pg-next-full/app/models"
)

func RegisterAPI(c *fiber.Ctx) error {
	type RegisterRequest struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}

	details := fiber.Map{}
	if strings.TrimSpace(req.Name) == "" {
		details["name"] = "Name is required"
	}
	if !strings.Contains(req.Email, "@") {
		details["email"] = "Valid email is required"
	}
	if len(req.Password) < 8 {
		details["password"] = "Password must be at least 8 characters"
	}
	if len(details) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": details})
	}

	// Self-registration always creates a USER account; admins come from the CLI.
	user, err := database.CreateUser(config.GetDB(), req.Name, req.Email, req.Password, models.RoleUser)
	if err != nil {
		if errors.Is(err, models.ErrEmailTaken) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email is already registered"})
		}
		config.GetLogger().Error("failed to register user", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong"})
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

func LoginAPI(c *fiber.Ctx) error {
	type LoginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}

	user, err := database.GetUserByEmail(config.GetDB(), req.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
		}
		config.GetLogger().Error("login lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong"})
	}

	if !database.CheckPasswordHash(req.Password, user.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
	}

	token, err := GenerateJWT(user)
	if err != nil {
		config.GetLogger().Error("failed to sign token", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong"})
	}

	c.Cookie(&fiber.Cookie{
		Name:     "jwt_token",
		Value:    token,
		Expires:  time.Now().Add(sessionDuration),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user":    user,
	})
}

func LogoutAPI(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "jwt_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})

	return c.JSON(fiber.Map{"message": "Logged out"})
}

func MeAPI(c *fiber.Ctx) error {
	caller := CallerFrom(c)

	user, err := database.GetUserByID(config.GetDB(), caller.ID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		config.GetLogger().Error("profile lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong"})
	}

	return c.JSON(user)
}

func ChangePasswordAPI(c *fiber.Ctx) error {
	type ChangePasswordRequest struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}
	if len(req.NewPassword) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid input",
			"details": fiber.Map{"new_password": "Password must be at least 8 characters"},
		})
	}

	caller := CallerFrom(c)

	user, err := database.GetUserByID(config.GetDB(), caller.ID)
	if err != nil {
		config.GetLogger().Error("password change lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong"})
	}

	if !database.CheckPasswordHash(req.CurrentPassword, user.Password) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Current password is incorrect"})
	}

	hashed, err := database.HashPassword(req.NewPassword)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong"})
	}

	if err := database.UpdateUserPassword(config.GetDB(), caller.ID, hashed); err != nil {
		config.GetLogger().Error("password update failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong"})
	}

	return c.JSON(fiber.Map{"message": "Password changed successfully"})
}
