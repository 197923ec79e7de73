package dashboard

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vibhu927/pg-next-full/app/config"
	"github.com/vibhu927/pg-next-full/app/database"
	"github.com/vibhu927/pg-next-full/app/routes/auth"
	"github.com/vibhu927/pg-next-full/app/routes/respond"
)

func SetupDashboardRoutes(app *fiber.App) {
	web := app.Group("/dashboard")
	web.Use(auth.AuthMiddleware)
	web.Get("/", DashboardPageHandler)

	api := app.Group("/api/dashboard")
	api.Use(auth.AuthMiddleware)
	api.Get("/summary", GetSummaryAPI)
}

func DashboardPageHandler(c *fiber.Ctx) error {
	caller := auth.CallerFrom(c)

	summary, err := database.GetOccupancySummary(config.GetDB(), caller)
	if err != nil {
		return respond.Error(c, err)
	}

	return c.Render("dashboard/index", fiber.Map{
		"Title":       "Dashboard - PG Manager",
		"CurrentPage": "dashboard",
		"Name":        c.Locals("caller_name"),
		"Summary":     summary,
	})
}

// GetSummaryAPI is the single occupancy read-model every consumer shares:
// no client recomputes occupancy or revenue from raw lists.
func GetSummaryAPI(c *fiber.Ctx) error {
	caller := auth.CallerFrom(c)

	summary, err := database.GetOccupancySummary(config.GetDB(), caller)
	if err != nil {
		return respond.Error(c, err)
	}
	return c.JSON(summary)
}
