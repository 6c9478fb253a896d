package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/internal/di"
	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/internal/middleware"
	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/pkg/config"
	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/pkg/database"
	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/pkg/logger"
	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/pkg/redis"
	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/pkg/telemetry"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logCfg := &logger.Config{
		Level:       "info",
		ServiceName: cfg.App.Name,
		Development: cfg.IsDevelopment(),
	}
	if cfg.App.Debug {
		logCfg.Level = "debug"
	}
	if err := logger.Init(logCfg); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	appLog := logger.Get()
	appLog.Info("Starting NOVA Bot Studio backend...")

	ctx := context.Background()

	// Initialize tracing
	if cfg.OTel.Enabled {
		if _, err := telemetry.Init(ctx, &telemetry.Config{
			Enabled:        true,
			ServiceName:    cfg.OTel.ServiceName,
			ServiceVersion: cfg.App.Version,
			Environment:    cfg.App.Environment,
			CollectorAddr:  cfg.OTel.CollectorAddr,
		}); err != nil {
			appLog.Fatal(fmt.Sprintf("Telemetry init failed: %v", err))
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := telemetry.Shutdown(shutdownCtx); err != nil {
				appLog.Warn(fmt.Sprintf("Telemetry shutdown: %v", err))
			}
		}()
	}

	// Initialize database connection
	dbCfg := &database.PostgresConfig{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxConns:        int32(cfg.Database.MaxOpenConns),
		MinConns:        int32(cfg.Database.MaxIdleConns),
		MaxConnLifetime: cfg.Database.ConnMaxLifetime,
		MaxConnIdleTime: cfg.Database.ConnMaxIdleTime,
		ConnectTimeout:  5 * time.Second,
		MaxRetries:      3,
		RetryInterval:   time.Second,
		EnableTracing:   cfg.OTel.Enabled,
	}
	db, err := database.NewPostgres(ctx, dbCfg)
	if err != nil {
		appLog.Fatal(fmt.Sprintf("Database connection failed: %v", err))
	}
	defer db.Close()
	appLog.Info(fmt.Sprintf("Database connected (pool: min=%d, max=%d)", dbCfg.MinConns, dbCfg.MaxConns))

	// Initialize Redis (optional, used for distributed rate limiting)
	var cache *redis.Client
	if cfg.Redis.Enabled {
		cache, err = redis.NewClient(ctx, &redis.Config{
			Host:          cfg.Redis.Host,
			Port:          cfg.Redis.Port,
			Password:      cfg.Redis.Password,
			DB:            cfg.Redis.DB,
			PoolSize:      cfg.Redis.PoolSize,
			MinIdleConns:  cfg.Redis.MinIdleConns,
			DialTimeout:   cfg.Redis.DialTimeout,
			ReadTimeout:   cfg.Redis.ReadTimeout,
			WriteTimeout:  cfg.Redis.WriteTimeout,
			MaxRetries:    3,
			RetryInterval: time.Second,
		})
		if err != nil {
			appLog.Fatal(fmt.Sprintf("Redis connection failed: %v", err))
		}
		defer cache.Close()
		appLog.Info("Redis connected")
	}

	// Build dependency injection container
	container := di.NewContainer(&di.ContainerConfig{
		Config: cfg,
		DB:     db,
		Redis:  cache,
	})

	// Start the background workers
	if err := container.MailerWorker.Start(ctx); err != nil {
		appLog.Fatal(fmt.Sprintf("Mailer worker failed to start: %v", err))
	}
	defer container.MailerWorker.Stop()

	if err := container.SessionJanitor.Start(ctx); err != nil {
		appLog.Fatal(fmt.Sprintf("Session janitor failed to start: %v", err))
	}
	defer container.SessionJanitor.Stop()

	// Setup Gin
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(appLog))
	router.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig(cfg.CORS.FrontendURL)))
	if cfg.OTel.Enabled {
		router.Use(telemetry.TracingMiddleware(cfg.OTel.ServiceName))
	}

	globalLimit := middleware.DefaultRateLimitConfig()
	globalLimit.UseRedis = cache != nil
	globalLimit.RedisClient = cache
	router.Use(middleware.RateLimiter(globalLimit))

	// Tighter budget for endpoints that send mail
	otpLimit := middleware.OTPRateLimitConfig()
	otpLimit.UseRedis = cache != nil
	otpLimit.RedisClient = cache
	otpRateLimiter := middleware.RateLimiter(otpLimit)

	// Health check endpoints
	router.GET("/health", container.HealthHandler.Health)
	router.GET("/ready", container.HealthHandler.Ready)

	// API routes
	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			// Registration and login
			auth.POST("/otp", otpRateLimiter, container.AuthHandler.RequestOTP)
			auth.POST("/register", container.AuthHandler.Register)
			auth.POST("/login", container.AuthHandler.Login)
			auth.POST("/login/otp", otpRateLimiter, container.AuthHandler.RequestLoginOTP)
			auth.POST("/login/otp/verify", container.AuthHandler.VerifyLoginOTP)

			// Session lifecycle
			auth.GET("/validate", container.AuthHandler.Validate)
			auth.POST("/logout", container.AuthHandler.Logout)
			auth.POST("/logout/all",
				middleware.Auth(container.AuthService, container.Cookies),
				container.AuthHandler.LogoutAll)

			// OAuth flows
			auth.GET("/google", container.OAuthHandler.Google)
			auth.GET("/google/callback", container.OAuthHandler.GoogleCallback)
			auth.GET("/github", container.OAuthHandler.GitHub)
			auth.GET("/github/callback", container.OAuthHandler.GitHubCallback)
		}

		bots := api.Group("/bots")
		bots.Use(middleware.Auth(container.AuthService, container.Cookies))
		{
			bots.POST("", container.BotHandler.Create)
			bots.GET("", container.BotHandler.List)
			bots.GET("/home", container.BotHandler.Home)
			bots.GET("/deleted", container.BotHandler.ListDeleted)
			bots.GET("/:id", container.BotHandler.Get)
			bots.DELETE("/:id", container.BotHandler.SoftDelete)
			bots.POST("/:id/restore", container.BotHandler.Restore)
			bots.DELETE("/:id/permanent", container.BotHandler.PermanentDelete)
		}
	}

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 2 * time.Second,
	}

	// Start server in goroutine
	go func() {
		appLog.Info(fmt.Sprintf("NOVA Bot Studio backend listening on %s", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal(fmt.Sprintf("Failed to start server: %v", err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Fatal(fmt.Sprintf("Server forced to shutdown: %v", err))
	}

	appLog.Info("Server exited gracefully")
}
