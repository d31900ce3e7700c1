package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alllin1/seo-blog-api/src/config"
	"github.com/alllin1/seo-blog-api/src/database"
	"github.com/alllin1/seo-blog-api/src/handlers"
	"github.com/alllin1/seo-blog-api/src/logging"
	"github.com/alllin1/seo-blog-api/src/middleware"
	"github.com/alllin1/seo-blog-api/src/services"
	"github.com/alllin1/seo-blog-api/src/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize structured logging
	logging.Setup(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	log.Info().
		Int("port", cfg.Port).
		Str("log_level", cfg.LogLevel).
		Msg("starting server")

	// Initialize database
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := database.New(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()

	log.Info().Msg("database connected")

	// Initialize JWT secret in middleware
	if err := middleware.SetJWTSecret(cfg.JWTSecret); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize JWT secret")
	}

	// Initialize media storage
	mediaStore, err := storage.NewLocalStorage(cfg.MediaDir, cfg.PublicBaseURL+"/media")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize media storage")
	}
	log.Info().Str("dir", cfg.MediaDir).Msg("media storage initialized")

	// Initialize services
	imageService := services.NewImageService(mediaStore, cfg.ImageFetchTimeout)
	credentialService := services.NewCredentialService(db.GetPool())
	postService := services.NewPostService(db.GetPool(), imageService, cfg.BlogBasePath)
	adminService := services.NewAdminService(db.GetPool())

	// Auto-seed admin user on first run (if ADMIN_USERNAME and ADMIN_PASSWORD are set)
	if cfg.AdminUsername != "" && cfg.AdminPassword != "" {
		hasAdmins, err := adminService.HasAdmins(context.Background())
		if err != nil {
			log.Error().Err(err).Msg("failed to check for existing admin users")
		} else if !hasAdmins {
			if _, err := adminService.CreateAdminUser(context.Background(), cfg.AdminUsername, cfg.AdminPassword); err != nil {
				log.Error().Err(err).Msg("failed to create initial admin user")
			} else {
				log.Info().Str("username", cfg.AdminUsername).Msg("initial admin user created")
			}
		}
	}

	// Create Gin router
	router := gin.New()

	// Add middleware
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": fmt.Sprintf("%v", recovered),
		})
	}))

	// CORS-open surface: external content platforms call from anywhere.
	// OPTIONS preflights are answered by this layer.
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization", "x-api-key"},
		ExposeHeaders:   []string{"Content-Length"},
		MaxAge:          12 * time.Hour,
	}))

	setupRoutes(router, db, cfg, credentialService, postService, adminService, mediaStore)

	// Create HTTP server with timeouts (protect from Slowloris attack)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().Int("port", cfg.Port).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	sig := <-sigChan

	log.Info().Str("signal", sig.String()).Msg("received shutdown signal")

	// Graceful shutdown with timeout
	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}

	log.Info().Msg("server shut down successfully")
}

func setupRoutes(
	router *gin.Engine,
	db *database.Database,
	cfg *config.Config,
	credentialService *services.CredentialService,
	postService *services.PostService,
	adminService *services.AdminService,
	mediaStore *storage.LocalStorage,
) {
	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	docsHandler := handlers.NewDocsHandler(cfg.PublicBaseURL)
	postHandler := handlers.NewPostHandler(postService)
	adminHandler := handlers.NewAdminHandler(adminService, credentialService)

	// API discovery (no auth required)
	router.GET("/", docsHandler.HandleDocs)
	router.GET("/docs", docsHandler.HandleDocs)

	// Health check endpoints
	router.GET("/health", healthHandler.HandleHealth)
	router.GET("/ready", healthHandler.HandleReady)

	// Persisted media objects
	router.Static("/media", mediaStore.Dir())

	// Post ingestion and read endpoints (require API key)
	posts := router.Group("/posts", middleware.RequireAPIKey(credentialService))
	posts.GET("", postHandler.HandleListPosts)
	posts.GET("/:idOrSlug", postHandler.HandleGetPost)
	posts.POST("", postHandler.HandleCreatePost)
	posts.PUT("/:idOrSlug", postHandler.HandleUpdatePost)
	posts.DELETE("/:idOrSlug", postHandler.HandleDeletePost)

	// Admin authentication (rate limited per IP)
	router.POST("/admin/login", middleware.LoginRateLimitMiddleware(), adminHandler.HandleAdminLogin)

	// Credential management (requires admin authentication)
	admin := router.Group("/admin", middleware.AdminAuthMiddleware())
	admin.GET("/credentials", adminHandler.HandleListCredentials)
	admin.POST("/credentials", adminHandler.HandleCreateCredential)
	admin.PATCH("/credentials/:id/active", adminHandler.HandleSetCredentialActive)
	admin.DELETE("/credentials/:id", adminHandler.HandleDeleteCredential)

	// Unknown routes still sit behind the credential check: only the
	// discovery and operational endpoints above answer unauthenticated
	// callers, everything else is 401 before it can be 404.
	router.NoRoute(middleware.RequireAPIKey(credentialService), func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Not found",
			"message": "Endpoint not found",
		})
	})
}
