package routes

import (
	"time"

	"github.com/emrekzl/trackly-backend/internal/config"
	"github.com/emrekzl/trackly-backend/internal/handlers"
	"github.com/emrekzl/trackly-backend/internal/middleware"
	"github.com/emrekzl/trackly-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authService *services.AuthService,
	authHandler *handlers.AuthHandler,
	metricHandler *handlers.MetricHandler,
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

	// Auth — public, with a stricter limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	// Metrics — bearer access token required
	metrics := api.Group("/metrics", middleware.JWTProtected(cfg), middleware.RequireUser(authService))
	metrics.Post("/", metricHandler.Create)
	metrics.Get("/", metricHandler.List)
	metrics.Delete("/:id", metricHandler.Delete)
	metrics.Post("/:id/values", metricHandler.AddValues)
	metrics.Get("/:id/values", metricHandler.ListValues)
}
