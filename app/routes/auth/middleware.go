package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/vibhu927/pg-next-full/app/models"
)

// AuthMiddleware validates the session token and stores the caller identity
// for the rest of the request.
func AuthMiddleware(c *fiber.Ctx) error {
	// Cookie first, Authorization header as fallback for API clients.
	tokenString := c.Cookies("jwt_token")
	if tokenString == "" {
		header := c.Get("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			tokenString = strings.TrimPrefix(header, "Bearer ")
		}
	}

	isAPIRequest := strings.HasPrefix(c.Path(), "/api/")

	if tokenString == "" {
		if isAPIRequest {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
		}
		return c.Redirect("/auth/login")
	}

	claims, err := ValidateJWT(tokenString)
	if err != nil {
		if isAPIRequest {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
		}
		return c.Redirect("/auth/login")
	}

	c.Locals("caller", models.Caller{
		ID:    claims.UserID,
		Email: claims.Email,
		Role:  claims.Role,
	})
	c.Locals("caller_name", claims.Name)

	return c.Next()
}

// RequireAdmin rejects non-admin callers. Runs after AuthMiddleware.
func RequireAdmin(c *fiber.Ctx) error {
	caller := CallerFrom(c)
	if !caller.IsAdmin() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}
	return c.Next()
}

// CallerFrom returns the identity the middleware resolved for this request.
func CallerFrom(c *fiber.Ctx) models.Caller {
	return c.Locals("caller").(models.Caller)
}
