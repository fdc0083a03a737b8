package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/whisperbox/backend/internal/config"
	"github.com/whisperbox/backend/internal/handlers"
	"github.com/whisperbox/backend/internal/middleware"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	relationshipHandler *handlers.RelationshipHandler,
	messageHandler *handlers.MessageHandler,
	moderationHandler *handlers.ModerationHandler,
	adminHandler *handlers.AdminHandler,
	uploadHandler *handlers.UploadHandler,
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

	// Auth — public, stricter limit: 10 req/min per IP
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
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	jwt := middleware.JWTProtected(cfg)
	active := middleware.RequireActiveUser(db)

	// Profiles — lookup works for anonymous viewers, block-aware when authed
	api.Get("/users/:handle", middleware.OptionalAuth(cfg, db), userHandler.GetProfile)
	api.Put("/users/me", jwt, active, userHandler.UpdateMe)
	api.Get("/users/:id/followers", jwt, active, userHandler.Followers)
	api.Get("/users/:id/following", jwt, active, userHandler.Following)

	// Relationship graph
	api.Post("/users/:id/follow", jwt, active, relationshipHandler.Follow)
	api.Delete("/users/:id/unfollow", jwt, active, relationshipHandler.Unfollow)
	api.Post("/users/:id/block", jwt, active, relationshipHandler.Block)
	api.Delete("/users/:id/unblock", jwt, active, relationshipHandler.Unblock)

	// Messaging — send allows anonymous callers, stricter limit
	api.Post("/messages",
		limiter.New(limiter.Config{
			Max:               20,
			Expiration:        1 * time.Minute,
			LimiterMiddleware: limiter.SlidingWindow{},
			KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		}),
		middleware.OptionalAuth(cfg, db),
		messageHandler.Send,
	)
	api.Get("/messages/inbox", jwt, active, messageHandler.Inbox)
	api.Get("/messages/feed", jwt, active, messageHandler.Feed)
	api.Put("/messages/:id/read", jwt, active, messageHandler.MarkRead)
	api.Post("/messages/:id/reply", jwt, active, messageHandler.Reply)
	api.Delete("/messages/:id", jwt, active, messageHandler.Delete)
	api.Post("/messages/:id/report", jwt, active, moderationHandler.ReportMessage)

	// Uploads
	api.Post("/uploads", jwt, active, uploadHandler.Upload)

	// Admin moderation panel
	admin := api.Group("/admin", jwt, active, middleware.AdminRequired())
	admin.Put("/users/:id/status", adminHandler.SetUserStatus)
	admin.Get("/reports", moderationHandler.ListReports)
	admin.Put("/reports/:id/review", moderationHandler.ReviewReport)
	admin.Delete("/messages/:id", adminHandler.DeleteMessage)
}
