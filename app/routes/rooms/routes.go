package rooms

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vibhu927/pg-next-full/app/routes/auth"
)

func SetupRoomsRoutes(app *fiber.App) {
	web := app.Group("/rooms")
	web.Use(auth.AuthMiddleware)
	web.Get("/", RoomsPageHandler)

	api := app.Group("/api/rooms")
	api.Use(auth.AuthMiddleware)
	api.Get("/", GetRoomsAPI)
	api.Post("/", CreateRoomAPI)
	api.Get("/:id", GetRoomAPI)
	api.Put("/:id", UpdateRoomAPI)
	api.Delete("/:id", DeleteRoomAPI)
}

func RoomsPageHandler(c *fiber.Ctx) error {
	return c.Render("rooms/index", fiber.Map{
		"Title":       "Rooms - PG Manager",
		"CurrentPage": "rooms",
		"Name":        c.Locals("caller_name"),
	})
}
