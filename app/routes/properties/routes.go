package properties

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vibhu927/pg-next-full/app/routes/auth"
)

func SetupPropertiesRoutes(app *fiber.App) {
	web := app.Group("/properties")
	web.Use(auth.AuthMiddleware)
	web.Get("/", PropertiesPageHandler)

	api := app.Group("/api/properties")
	api.Use(auth.AuthMiddleware)
	api.Get("/", GetPropertiesAPI)
	api.Post("/", CreatePropertyAPI)
	api.Get("/:id", GetPropertyAPI)
	api.Put("/:id", UpdatePropertyAPI)
	api.Delete("/:id", DeletePropertyAPI)
	api.Get("/:id/qr-code", GetQRCodeAPI)
	api.Post("/:id/qr-code", GenerateQRCodeAPI)
}

func PropertiesPageHandler(c *fiber.Ctx) error {
	return c.Render("properties/index", fiber.Map{
		"Title":       "Properties - PG Manager",
		"CurrentPage": "properties",
		"Name":        c.Locals("caller_name"),
	})
}
