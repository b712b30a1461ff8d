package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/zacharyr0th/patron-gate/internal/aptos"
	"github.com/zacharyr0th/patron-gate/internal/config"
	"github.com/zacharyr0th/patron-gate/internal/handler"
	"github.com/zacharyr0th/patron-gate/internal/middleware"
	"github.com/zacharyr0th/patron-gate/internal/repository"
	"github.com/zacharyr0th/patron-gate/internal/service"
	"github.com/zacharyr0th/patron-gate/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	repo, err := repository.New(cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer repo.Close()

	// Aptos fullnode client for membership reads and payment verification
	chain, err := aptos.NewClient(cfg.Aptos.Network, cfg.Aptos.ContractAddress)
	if err != nil {
		log.Fatalf("Failed to create Aptos client: %v", err)
	}

	// Blob storage gateway
	blobs, err := storage.NewClient(cfg)
	if err != nil {
		log.Fatalf("Failed to create storage client: %v", err)
	}

	// Create services
	userSvc := service.NewUserService(repo)
	creatorSvc := service.NewCreatorService(repo)
	tierSvc := service.NewTierService(repo, chain)
	accessSvc := service.NewAccessService(repo)
	sessionSvc := service.NewStorageSessionService(repo, chain, cfg)
	revenueSvc := service.NewRevenueService(repo)
	notificationSvc := service.NewNotificationService(repo)
	membershipSvc := service.NewMembershipService(repo, chain, chain)
	contentSvc := service.NewContentService(repo, blobs, accessSvc, sessionSvc)
	postSvc := service.NewPostService(repo, accessSvc)

	// Link collaborators (to avoid circular dependency)
	membershipSvc.SetRevenueService(revenueSvc)
	membershipSvc.SetNotificationService(notificationSvc)
	contentSvc.SetNotificationService(notificationSvc)

	// Create handlers
	h := handler.New(cfg, userSvc, creatorSvc, tierSvc, membershipSvc, accessSvc, contentSvc, postSvc, sessionSvc, revenueSvc, notificationSvc)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit: 512 * 1024 * 1024,
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

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Shelby-Session",
		AllowCredentials: cfg.Server.AllowOrigins != "*",
	}))

	// Health check
	app.Get("/health", h.Health)

	// Auth
	app.Post("/api/auth/login", h.Login)
	app.Post("/api/auth/logout", h.Logout)
	app.Get("/api/auth/session", middleware.RequireAuth(cfg), h.Session)

	// Public discovery, viewer-aware where a token is present
	public := app.Group("/api", middleware.OptionalAuth(cfg))
	public.Get("/creators", h.ListCreators)
	public.Get("/creators/:wallet", h.GetCreator)
	public.Get("/creators/:wallet/tiers", h.ListTiers)
	public.Get("/creators/:wallet/tiers/:tier_id", h.GetTier)
	public.Get("/creators/:wallet/content", h.ListCreatorContent)
	public.Get("/creators/:wallet/posts", h.ListCreatorPosts)
	public.Get("/content", h.ListPublicContent)
	public.Get("/content/:id", h.GetContent)
	public.Get("/content/:id/stream", h.StreamContent)
	public.Get("/content/:id/download", h.DownloadContent)
	public.Get("/posts", h.ListPosts)
	public.Get("/posts/:id", h.GetPost)

	// Sync endpoints are idempotent cache refreshes, open to any caller
	app.Post("/api/creators/:wallet/tiers/:tier_id/sync", h.SyncTier)

	// Authenticated API
	api := app.Group("/api", middleware.RequireAuth(cfg))
	api.Get("/user/me", h.GetMe)
	api.Put("/user/me", h.UpdateMe)
	api.Get("/users/:wallet", h.GetUserByWallet)

	api.Post("/creator/initialize", h.InitializeCreator)
	api.Put("/creator/profile", h.UpdateCreator)
	api.Get("/creator/stats", h.GetCreatorStats)
	api.Get("/creator/members", h.ListCreatorMembers)
	api.Get("/creator/revenue", h.ListRevenue)
	api.Get("/creator/revenue/summary", h.GetRevenueSummary)

	api.Get("/memberships", h.ListMyMemberships)
	api.Get("/memberships/:wallet", h.GetMembership)
	api.Post("/memberships/:wallet/sync", h.SyncMembership)
	api.Post("/memberships/purchase", h.RecordPurchase)
	api.Get("/access/:wallet", h.CheckAccess)

	api.Post("/content", h.UploadContent)
	api.Put("/content/:id", h.UpdateContent)
	api.Delete("/content/:id", h.DeleteContent)

	api.Post("/posts", h.CreatePost)
	api.Put("/posts/:id", h.UpdatePost)
	api.Delete("/posts/:id", h.DeletePost)

	api.Post("/storage/sessions", h.CreateStorageSession)
	api.Get("/storage/sessions/:id", h.GetStorageSession)
	api.Get("/storage/estimate", h.EstimateUploadCost)

	api.Get("/notifications", h.ListNotifications)
	api.Post("/notifications/read-all", h.MarkAllNotificationsRead)
	api.Post("/notifications/:id/read", h.MarkNotificationRead)

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cleanupWorker := service.NewCleanupWorker(sessionSvc)
	go cleanupWorker.Start(ctx)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("Shutting down server...")
		cancel()
		_ = app.Shutdown()
	}()

	// Start server
	log.Printf("Server starting on port %s", cfg.Server.Port)
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
