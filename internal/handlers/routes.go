package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/job-tracker/internal/auth"
)

type Handlers struct {
	Jobs         *JobHandler
	Postings     *PostingHandler
	Scores       *ScoreHandler
	Letters      *LetterHandler
	Sync         *SyncHandler
	Dashboard    *DashboardHandler
	Applications *ApplicationHandler
}

type AppOptions struct {
	BodyLimit  int
	LogRequest bool
}

// NewApp creates the fiber app with the shared middleware stack.
func NewApp(opts AppOptions) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Job Tracker API",
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          60 * time.Second,
		BodyLimit:             opts.BodyLimit,
		ErrorHandler:          ErrorHandler,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	if opts.LogRequest {
		app.Use(logger.New(logger.Config{
			Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
			TimeFormat: "2006-01-02 15:04:05",
		}))
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	return app
}

// Register mounts the API under /api/v1. Every route except /health requires
// a bearer token when tokens is not nil.
func Register(app *fiber.App, h Handlers, tokens auth.TokenManager) {
	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	if tokens != nil {
		api.Use(RequireToken(tokens))
	}

	api.Get("/dashboard", h.Dashboard.HandleDashboard)
	api.Get("/analytics", h.Dashboard.HandleAnalytics)
	api.Get("/profile", h.Dashboard.HandleProfile)
	api.Get("/letter-styles", h.Letters.HandleStyles)

	api.Get("/jobs", h.Jobs.HandleList)
	api.Post("/jobs", h.Jobs.HandleCreate)
	api.Post("/jobs/import", h.Jobs.HandleImport)
	api.Post("/jobs/rescore", h.Scores.HandleRescore)
	api.Get("/jobs/:id", h.Jobs.HandleGet)
	api.Patch("/jobs/:id", h.Jobs.HandleUpdate)
	api.Post("/jobs/:id/posting", h.Postings.HandleUpload)
	api.Post("/jobs/:id/score", h.Scores.HandleScore)
	api.Post("/jobs/:id/cover-letter", h.Letters.HandleCoverLetter)
	api.Post("/jobs/:id/package", h.Letters.HandlePackage)
	api.Get("/jobs/:id/links", h.Letters.HandleLinks)
	api.Post("/jobs/:id/notion", h.Sync.HandlePush)
	api.Post("/jobs/:id/applications", h.Applications.HandleCreate)

	api.Post("/notion/pull", h.Sync.HandlePull)
	api.Post("/notion/reading-list", h.Sync.HandleReadingList)

	api.Get("/applications", h.Applications.HandleList)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Job Tracker API",
			"version": "1.0.0",
			"docs":    "/api/v1",
		})
	})
}
