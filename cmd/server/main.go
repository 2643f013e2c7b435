package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shareloop/backend/internal/analytics"
	"github.com/shareloop/backend/internal/auditlog"
	"github.com/shareloop/backend/internal/auth"
	"github.com/shareloop/backend/internal/cache"
	"github.com/shareloop/backend/internal/config"
	"github.com/shareloop/backend/internal/database"
	"github.com/shareloop/backend/internal/handlers"
	"github.com/shareloop/backend/internal/logger"
	"github.com/shareloop/backend/internal/middleware"
	"github.com/shareloop/backend/internal/settings"
	"go.uber.org/zap"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.LogLevel, cfg.LogFile); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	logger.Log.Info("=== Shareloop admin backend starting ===")

	// Initialize database
	if err := database.Initialize(); err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer database.Close()

	if err := database.Migrate(); err != nil {
		logger.Log.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Redis is optional; without it the rate limiter falls open
	if cfg.RedisHost != "" {
		redisClient, err := cache.NewRedisClient(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword)
		if err != nil {
			logger.Log.Warn("Redis unavailable, rate limiting disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
		}
	}

	// Services
	authService := auth.NewService(cfg.JWTSecret)
	analyticsService := analytics.NewService(database.DB, cfg.QueryTimeout)
	settingsService := settings.NewService(database.DB)
	auditRecorder := auditlog.NewRecorder(database.DB)

	// Seed setting defaults; existing values are left alone
	if err := settingsService.Seed(context.Background()); err != nil {
		logger.Log.Fatal("Failed to seed settings", zap.Error(err))
	}

	h := handlers.NewHandlers(analyticsService, settingsService, auditRecorder)

	// Setup Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.GinLoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"} // Configure properly for production
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Request-ID"}
	r.Use(cors.New(corsConfig))

	// Health check and Prometheus endpoints
	r.GET("/health", func(c *gin.Context) {
		status := http.StatusOK
		dbStatus := "ok"
		if err := database.Health(); err != nil {
			status = http.StatusServiceUnavailable
			dbStatus = "unavailable"
		}
		c.JSON(status, gin.H{
			"status":    dbStatus,
			"timestamp": time.Now().UTC(),
			"service":   "shareloop-backend",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Authenticated member routes
	api := r.Group("/api")
	api.Use(middleware.RequireAuth(authService))
	api.GET("/profile", h.GetMyProfile)
	api.PUT("/profile", h.UpdateMyProfile)

	// Admin console routes: auth, then the per-request admin predicate,
	// then rate limiting
	admin := r.Group("/api/admin")
	admin.Use(middleware.RequireAuth(authService))
	admin.Use(middleware.RequireAdmin(cfg.AdminEmail, cfg.AdminDomain))
	admin.Use(middleware.RedisRateLimitMiddleware(300, time.Minute))

	admin.GET("/dashboard", h.GetDashboard)
	admin.GET("/analytics/growth", h.GetUserGrowth)
	admin.GET("/analytics/categories", h.GetCategoryDistribution)

	admin.GET("/users", h.ListUsers)
	admin.POST("/users/:id/ban", h.BanUser)
	admin.POST("/users/:id/unban", h.UnbanUser)
	admin.POST("/users/:id/promote", h.PromoteUser)
	admin.POST("/users/:id/demote", h.DemoteUser)

	admin.GET("/items", h.ListItems)
	admin.PUT("/items/:id/availability", h.SetItemAvailability)
	admin.DELETE("/items/:id", h.DeleteItem)

	admin.GET("/reports", h.ListReports)
	admin.PUT("/reports/:id/status", h.UpdateReportStatus)

	admin.GET("/settings", h.GetSettings)
	admin.PUT("/settings/:key", h.UpdateSetting)

	admin.GET("/audit-logs", h.ListAuditLogs)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Log.Info("Server listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Forced shutdown", zap.Error(err))
	}
	logger.Log.Info("Server stopped")
}
