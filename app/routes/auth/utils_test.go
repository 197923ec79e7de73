package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibhu927/pg-next-full/app/config"
	"github.com/vibhu927/pg-next-full/app/models"
)

func init() {
	config.AppConfig = &config.Config{JWTSecret: "test-secret"}
}

func TestJWTRoundTrip(t *testing.T) {
	user := &models.User{
		ID:    "user-1",
		Name:  "Priya Patel",
		Email: "priya@example.com",
		Role:  models.RoleAdmin,
	}

	token, err := GenerateJWT(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.Name, claims.Name)
	assert.Equal(t, user.Role, claims.Role)
	assert.Equal(t, "pg-manager", claims.Issuer)
}

func TestValidateJWTRejectsTamperedToken(t *testing.T) {
	user := &models.User{ID: "user-1", Email: "priya@example.com", Role: models.RoleUser}
	token, err := GenerateJWT(user)
	require.NoError(t, err)

	_, err = ValidateJWT(token + "x")
	assert.Error(t, err)

	_, err = ValidateJWT("not-a-token")
	assert.Error(t, err)
}

func TestAuthMiddlewareResolvesCaller(t *testing.T) {
	app := fiber.New()
	app.Get("/api/whoami", AuthMiddleware, func(c *fiber.Ctx) error {
		return c.JSON(CallerFrom(c))
	})

	user := &models.User{ID: "user-1", Name: "Priya Patel", Email: "priya@example.com", Role: models.RoleUser}
	token, err := GenerateJWT(user)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/whoami", nil)
	req.AddCookie(&http.Cookie{Name: "jwt_token", Value: token})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthMiddlewareBearerFallback(t *testing.T) {
	app := fiber.New()
	app.Get("/api/whoami", AuthMiddleware, func(c *fiber.Ctx) error {
		return c.JSON(CallerFrom(c))
	})

	user := &models.User{ID: "user-1", Email: "priya@example.com", Role: models.RoleUser}
	token, err := GenerateJWT(user)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthMiddlewareMissingTokenOnAPI(t *testing.T) {
	app := fiber.New()
	app.Get("/api/whoami", AuthMiddleware, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/api/whoami", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAdmin(t *testing.T) {
	app := fiber.New()
	app.Get("/api/admin-only", AuthMiddleware, RequireAdmin, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	userToken, err := GenerateJWT(&models.User{ID: "u", Email: "u@example.com", Role: models.RoleUser})
	require.NoError(t, err)
	adminToken, err := GenerateJWT(&models.User{ID: "a", Email: "a@example.com", Role: models.RoleAdmin})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest("GET", "/api/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
