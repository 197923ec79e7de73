package cmd

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vibhu927/pg-next-full/app/config"
	"github.com/vibhu927/pg-next-full/app/database"
	"github.com/vibhu927/pg-next-full/app/routes/auth"
	"github.com/vibhu927/pg-next-full/app/routes/dashboard"
	"github.com/vibhu927/pg-next-full/app/routes/payments"
	"github.com/vibhu927/pg-next-full/app/routes/properties"
	"github.com/vibhu927/pg-next-full/app/routes/rooms"
	"github.com/vibhu927/pg-next-full/app/routes/tenants"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// customErrorHandler keeps API errors as JSON and page errors as rendered
// templates.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	if strings.HasPrefix(c.Path(), "/api") {
		return c.Status(code).JSON(fiber.Map{
			"error": err.Error(),
			"code":  code,
		})
	}

	if code == fiber.StatusNotFound {
		return c.Status(code).Render("404", fiber.Map{
			"Title": "Page Not Found - PG Manager",
		}, "")
	}
	return c.Status(code).Render("error", fiber.Map{
		"Title":        "Error - PG Manager",
		"ErrorCode":    code,
		"ErrorMessage": err.Error(),
	}, "")
}

// NewApp builds the Fiber application with all routes registered.
func NewApp() *fiber.App {
	engine := html.New("./views", ".html")

	app := fiber.New(fiber.Config{
		Views:        engine,
		ErrorHandler: customErrorHandler,
		AppName:      "PG Manager",
	})

	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${locals:requestid} ${status} - ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowCredentials: true,
		AllowOriginsFunc: func(origin string) bool { return true },
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/dashboard")
	})

	auth.SetupAuthRoutes(app)
	dashboard.SetupDashboardRoutes(app)
	properties.SetupPropertiesRoutes(app)
	rooms.SetupRoomsRoutes(app)
	tenants.SetupTenantsRoutes(app)
	payments.SetupPaymentsRoutes(app)

	return app
}

func runServer() error {
	log := config.GetLogger()

	if err := database.InitSchema(config.GetDB()); err != nil {
		return err
	}

	app := NewApp()

	addr := ":" + config.AppConfig.Port
	log.Info("server listening", zap.String("addr", addr))
	return app.Listen(addr)
}
