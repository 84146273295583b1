package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"
	"github.com/gofiber/websocket/v2"

	"github.com/kumbhsarthi/sarthi/internal/pkg/metrics"
)

// SetupRoutes registers all REST, GraphQL, and WebSocket routes.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	// Prometheus metrics
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	// Response compression (gzip)
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	// Pilgrim clients are browser PWAs served from a different origin
	app.Use(cors.New())

	// Request ID
	app.Use(requestid.New())

	// Propagate request ID into slog context
	app.Use(RequestIDLogMiddleware())

	// Access logs (structured HTTP request logging)
	app.Use(AccessLogMiddleware())

	// Rate limiting: 120 requests per minute per IP
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(429).JSON(fiber.Map{
				"error":   "rate limit exceeded",
				"message": "too many requests, please try again later",
			})
		},
		SkipFailedRequests: false,
	}))

	// Security headers + API version
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("X-API-Version", "1.0.0")
		return c.Next()
	})

	// ETag for conditional caching
	app.Use(ETagMiddleware())

	// Default Cache-Control headers
	app.Use(CachingMiddleware())

	// Health & readiness (no timeout, fast internal checks)
	app.Get("/v1/health", HealthHandler(deps))
	app.Get("/v1/ready", ReadyHandler(deps))

	// REST API v1 with a 15s per-request timeout
	v1 := app.Group("/v1")
	v1.Get("/facilities", timeout.NewWithContext(ListFacilitiesHandler(deps), 15*time.Second))
	v1.Get("/facilities/nearby", timeout.NewWithContext(NearbyFacilitiesHandler(deps), 15*time.Second))
	v1.Get("/facilities/nearest", timeout.NewWithContext(NearestFacilityHandler(deps), 15*time.Second))
	v1.Get("/facilities/:id", timeout.NewWithContext(GetFacilityHandler(deps), 15*time.Second))
	v1.Get("/directions", timeout.NewWithContext(DirectionsHandler(deps), 15*time.Second))
	v1.Get("/navigation", timeout.NewWithContext(NavigationHandler(deps), 15*time.Second))
	v1.Get("/contacts", timeout.NewWithContext(ContactsHandler(deps), 15*time.Second))
	v1.Get("/sos", timeout.NewWithContext(SOSMessageHandler(deps), 15*time.Second))

	v1.Post("/emergencies", timeout.NewWithContext(ReportEmergencyHandler(deps), 15*time.Second))
	v1.Get("/emergencies", timeout.NewWithContext(ListEmergenciesHandler(deps), 15*time.Second))
	v1.Post("/emergencies/detect", timeout.NewWithContext(DetectEmergencyHandler(deps), 15*time.Second))
	v1.Get("/emergencies/:id", timeout.NewWithContext(GetEmergencyHandler(deps), 15*time.Second))
	v1.Patch("/emergencies/:id/status", timeout.NewWithContext(UpdateEmergencyStatusHandler(deps), 15*time.Second))

	// Durable archive (control room)
	v1.Get("/archive/cases", timeout.NewWithContext(ArchiveListHandler(deps), 15*time.Second))
	v1.Get("/archive/stats", timeout.NewWithContext(ArchiveStatsHandler(deps), 15*time.Second))

	// GraphQL
	app.Post("/graphql", GraphQLHandler(deps))

	// API documentation (Swagger UI)
	SetupDocs(app)

	// WebSocket
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(WebSocketHandler(deps.NATS)))
}
