package tenants

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vibhu927/pg-next-full/app/routes/auth"
)

func SetupTenantsRoutes(app *fiber.App) {
	web := app.Group("/tenants")
	web.Use(auth.AuthMiddleware)
	web.Get("/", TenantsPageHandler)

	api := app.Group("/api/tenants")
	api.Use(auth.AuthMiddleware)
	api.Get("/", GetTenantsAPI)
	api.Post("/", CreateTenantAPI)
	// "/me" must be registered before "/:id" so it is not swallowed.
	api.Get("/me", GetMyTenantAPI)
	api.Get("/:id", GetTenantAPI)
	api.Put("/:id", UpdateTenantAPI)
	api.Delete("/:id", DeleteTenantAPI)
}

func TenantsPageHandler(c *fiber.Ctx) error {
	return c.Render("tenants/index", fiber.Map{
		"Title":       "Tenants - PG Manager",
		"CurrentPage": "tenants",
		"Name":        c.Locals("caller_name"),
	})
}
