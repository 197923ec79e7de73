package payments

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vibhu927/pg-next-full/app/routes/auth"
)

func SetupPaymentsRoutes(app *fiber.App) {
	web := app.Group("/payments")
	web.Use(auth.AuthMiddleware)
	web.Get("/", PaymentsPageHandler)

	api := app.Group("/api/payments")
	api.Use(auth.AuthMiddleware)
	api.Get("/", GetPaymentsAPI)
	api.Post("/", CreatePaymentAPI)
	api.Get("/export", ExportPaymentsAPI)
	api.Get("/:id", GetPaymentAPI)
	api.Put("/:id", UpdatePaymentAPI)
	api.Delete("/:id", DeletePaymentAPI)

	// Explicit workflow transitions. The generic PUT never moves status.
	api.Post("/:id/mark-paid", MarkPaidAPI)
	api.Post("/:id/approve", ApprovePaymentAPI)
	api.Post("/:id/decline", DeclinePaymentAPI)
	api.Post("/:id/status", auth.RequireAdmin, ForceStatusAPI)
}

func PaymentsPageHandler(c *fiber.Ctx) error {
	return c.Render("payments/index", fiber.Map{
		"Title":       "Payments - PG Manager",
		"CurrentPage": "payments",
		"Name":        c.Locals("caller_name"),
	})
}
