package auth

import (
	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	web := app.Group("/auth")
	web.Get("/login", ShowLoginPage)
	web.Get("/register", ShowRegisterPage)

	api := app.Group("/api/auth")
	api.Post("/register", RegisterAPI)
	api.Post("/login", LoginAPI)
	api.Post("/logout", LogoutAPI)

	api.Use(AuthMiddleware)
	api.Get("/me", MeAPI)
	api.Post("/change-password", ChangePasswordAPI)
}

func ShowLoginPage(c *fiber.Ctx) error {
	// Already logged in, go straight to the dashboard.
	if tokenString := c.Cookies("jwt_token"); tokenString != "" {
		if _, err := ValidateJWT(tokenString); err == nil {
			return c.Redirect("/dashboard")
		}
	}

	return c.Render("auth/login", fiber.Map{
		"Title": "Login - PG Manager",
	}, "")
}

func ShowRegisterPage(c *fiber.Ctx) error {
	return c.Render("auth/register", fiber.Map{
		"Title": "Register - PG Manager",
	}, "")
}
