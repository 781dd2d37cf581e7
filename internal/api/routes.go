package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// NewApp builds the Fiber application with standard middleware.
func NewApp(corsOrigins string) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "PairForge API",
		DisableStartupMessage: false,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${error}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "UTC",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	return app
}

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, h *Handlers, metrics *MetricsHandler) {
	app.Get("/health", h.Health)

	v1 := app.Group("/api/v1")

	v1.Post("/extract", h.Extract)
	v1.Post("/upload", h.UploadFile)

	pairs := v1.Group("/pairs")
	pairs.Get("/", h.ListPairs)
	pairs.Post("/", h.AddPair)
	pairs.Delete("/", h.ClearPairs)
	pairs.Post("/dedupe", h.DedupePairs)
	pairs.Post("/validate", h.ValidatePairs)
	pairs.Get("/:index", h.GetPair)
	pairs.Put("/:index", h.UpdatePair)
	pairs.Delete("/:index", h.DeletePair)

	v1.Get("/analysis", h.Analyze)
	v1.Get("/cleaning", h.CleaningScan)

	v1.Get("/export", h.ExportDataset)
	v1.Post("/import", h.ImportDataset)
	v1.Post("/seed", h.SeedData)

	if metrics != nil {
		v1.Get("/metrics", metrics.GetMetrics)
		v1.Delete("/metrics", metrics.ClearMetrics)
	}
}
