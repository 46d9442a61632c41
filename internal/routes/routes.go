package routes

import (
	"time"

	"github.com/campusfind/campusfind-backend/internal/config"
	"github.com/campusfind/campusfind-backend/internal/handlers"
	"github.com/campusfind/campusfind-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	itemHandler *handlers.ItemHandler,
	notificationHandler *handlers.NotificationHandler,
	adminHandler *handlers.AdminHandler,
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

	// Auth — public, with a stricter rate limit: 10 req/min per IP
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
	auth.Post("/forgot-password", authHandler.ForgotPassword)
	auth.Post("/reset-password", authHandler.ResetPassword)

	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	// Items — public, mirroring the open report/claim flow. Anonymous
	// reports are allowed; creation responds before matching runs.
	items := api.Group("/items")
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/stats/:email", itemHandler.UserStats)
	items.Get("/activity/:email", itemHandler.UserActivity)
	items.Get("/:id", itemHandler.Get)
	items.Post("/:id/claim", itemHandler.SubmitClaim)

	// Notifications
	notifications := api.Group("/notifications")
	notifications.Get("/unread/:email", notificationHandler.UnreadCount)
	notifications.Put("/mark-read/:id", notificationHandler.MarkRead)
	notifications.Get("/:email", notificationHandler.ListForRecipient)

	// Public announcement banner and feedback intake
	api.Get("/announcements", adminHandler.ActiveAnnouncement)
	api.Post("/feedback", adminHandler.SubmitFeedback)

	// Admin panel (JWT + admin required)
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))
	admin.Get("/stats", adminHandler.Stats)
	admin.Get("/users", adminHandler.ListUsers)
	admin.Delete("/users/:id", adminHandler.DeleteUser)
	admin.Delete("/items/:id", adminHandler.DeleteItem)
	admin.Post("/batch-match", adminHandler.RunBatchMatch)
	admin.Get("/activity", adminHandler.RecentActivity)
	admin.Get("/report/items", adminHandler.ItemsReport)
	admin.Get("/claims", adminHandler.ListClaims)
	admin.Put("/claims/:itemID/:claimID", adminHandler.ModerateClaim)
	admin.Post("/announcements", adminHandler.CreateAnnouncement)
	admin.Get("/analytics/data", adminHandler.Analytics)
	admin.Get("/feedback", adminHandler.ListFeedback)
	admin.Put("/feedback/:id", adminHandler.ResolveFeedback)
	admin.Get("/audit-logs", adminHandler.AuditLogs)
	admin.Delete("/audit-logs", adminHandler.ClearAuditLogs)
}
