package router

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/volunteermatch/volunteer-server-go/database"
	"github.com/volunteermatch/volunteer-server-go/log"
	"github.com/volunteermatch/volunteer-server-go/session"
)

type Config struct {
	CorsOrigins string
	// PingDatabase enables the per-request connection check.
	PingDatabase bool
}

// ErrorHandler maps any error returned by a handler to a standardised JSON response.
func ErrorHandler(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	return ctx.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// NewApp builds the Fiber app with the middleware stack and all routes.  The session store and database must already
// be initialised.
func NewApp(config Config) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadBufferSize:  8192,
		WriteBufferSize: 8192,
		ErrorHandler:    ErrorHandler,
	})

	app.Use(recover.New())

	app.Use(log.NewRequestMiddleware(log.RequestConfig{
		GetVolunteerId: session.CachedVolunteerID,
	}))

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	// The client sends the session cookie, so credentials must be allowed, which in turn needs explicit origins.
	origins := config.CorsOrigins
	if origins == "" {
		origins = "*"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowCredentials: origins != "*",
		MaxAge:           86400,
	}))

	if config.PingDatabase {
		app.Use(database.NewPingMiddleware(database.Config{}))
	}

	app.Use(session.NewAuthMiddleware(session.AuthConfig{
		OpenAccess: session.DefaultOpenAccess,
	}))

	SetupRoutes(app)

	return app
}

// AutoMigrate creates or updates every table.
func AutoMigrate() error {
	return database.Migrate(Models()...)
}
