package server

import (
	"context"
	"path/filepath"
	"strings"

	"notetaking-be/internal/bootstrap"
	"notetaking-be/internal/config"
	"notetaking-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

const serverModule = "server"

// multipartOverhead leaves room for form fields and part headers around the file itself.
const multipartOverhead = 1 << 20

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	// Initialize Fiber App
	app := fiber.New(fiber.Config{
		BodyLimit:             int(container.MediaStore.MaxBytes()) + multipartOverhead,
		ErrorHandler:          serverutils.NewErrorHandler(container.Logger),
		DisableStartupMessage: cfg.IsProduction(),
	})

	// Middleware
	app.Use(cors.New(corsConfig(cfg.App.CorsAllowedOrigins)))

	// OpenTelemetry tracing middleware (no-op provider unless tracing is enabled)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.RequestLogger(container.Logger))
	app.Use(serverutils.ErrorHandlerMiddleware(container.Logger))

	// Static media, same prefix the stored file paths carry
	app.Static("/uploads", container.MediaStore.Root(), fiber.Static{
		ByteRange: true,
	})

	// Routes
	registerRoutes(app, container)

	if cfg.App.ClientBuildDir != "" {
		registerClient(app, cfg.App.ClientBuildDir)
	}

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func corsConfig(origins string) cors.Config {
	return cors.Config{
		AllowOrigins: origins,
		// fiber refuses credentials together with a wildcard origin
		AllowCredentials: origins != "*",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type",
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	s.container.Logger.Info(serverModule, "Server is running", map[string]interface{}{
		"address": "http://localhost:" + s.cfg.App.Port,
	})
	return s.app.Listen(":" + s.cfg.App.Port)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	api := app.Group("/api")

	c.HealthController.RegisterRoutes(api)
	c.NoteController.RegisterRoutes(api)
}

// registerClient serves the bundled web client and falls back to index.html so
// client side routes survive a reload.
func registerClient(app *fiber.App, dir string) {
	app.Static("/", dir)

	index := filepath.Join(dir, "index.html")
	app.Get("/*", func(ctx *fiber.Ctx) error {
		p := ctx.Path()
		if strings.HasPrefix(p, "/api/") || p == "/api" || strings.HasPrefix(p, "/uploads/") {
			return fiber.ErrNotFound
		}
		return ctx.SendFile(index)
	})
}
