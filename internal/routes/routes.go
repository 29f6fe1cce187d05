package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/mycarebay/carebay-backend/internal/handlers"
)

func Setup(
	app *fiber.App,
	authHandler *handlers.AuthHandler,
	seniorHandler *handlers.SeniorHandler,
	aiHandler *handlers.AIHandler,
	telemetryHandler *handlers.TelemetryHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth-specific rate limit: 10 req/min per IP (stricter)
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/login", authHandler.Login)

	seniors := api.Group("/seniors")
	seniors.Get("/user", seniorHandler.ListByUser)
	seniors.Delete("/delete", seniorHandler.Delete)
	seniors.Post("/", seniorHandler.Save)
	seniors.Get("/:id", seniorHandler.Get)

	ai := api.Group("/ai")
	ai.Post("/care-advice", aiHandler.CareAdvice)
	ai.Post("/facility-checklist", aiHandler.FacilityChecklist)
	ai.Post("/ailment-education", aiHandler.AilmentEducation)

	api.Post("/error-log", telemetryHandler.LogErrors)
	api.Post("/performance-log", telemetryHandler.LogMetrics)
}
