package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sallatna/sallatna-backend/internal/config"
	"github.com/sallatna/sallatna-backend/internal/db"
	"github.com/sallatna/sallatna-backend/internal/handlers"
	"github.com/sallatna/sallatna-backend/internal/logger"
	"github.com/sallatna/sallatna-backend/internal/middleware"
	"github.com/sallatna/sallatna-backend/internal/repos"
	"github.com/sallatna/sallatna-backend/internal/server"
	"github.com/sallatna/sallatna-backend/internal/services"
	"github.com/sallatna/sallatna-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Config
	log.Info("Loading configuration from main...")
	cfg, err := config.Load(log)
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 86400, log)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("Postgres init failed", "error", err)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Fatal("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	if utils.GetEnvAsBool("SEED_DB", false, log) {
		if err := db.Seed(context.Background(), thePG, log); err != nil {
			log.Warn("DB seeding failed", "error", err)
		}
	}

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	productRepo := repos.NewProductRepo(thePG, log)
	orderRepo := repos.NewOrderRepo(thePG, log)
	orderItemRepo := repos.NewOrderItemRepo(thePG, log)
	notificationRepo := repos.NewNotificationRepo(thePG, log)

	// Services
	log.Info("Setting up Services from main...")
	authService := services.NewAuthService(thePG, log, userRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second)
	viewService := services.NewViewService(thePG, log, userRepo, productRepo, orderItemRepo)
	orderNotifier := services.NewOrderNotifier(log, notificationRepo)
	productService := services.NewProductService(thePG, log, productRepo, viewService)
	orderService := services.NewOrderService(thePG, log, orderRepo, orderItemRepo, viewService, orderNotifier)
	notificationService := services.NewNotificationService(thePG, log, notificationRepo)

	// Handlers
	log.Info("Setting up handlers from main...")
	authHandler := handlers.NewAuthHandler(authService, cfg.Server.CookieDomain, cfg.Server.CookieSecure)
	productHandler := handlers.NewProductHandler(productService)
	orderHandler := handlers.NewOrderHandler(orderService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	// Middleware
	log.Info("Setting up middleware from main...")
	authMiddleware := middleware.NewAuthMiddleware(log, authService)
	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = middleware.NewRateLimiter(log, cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		CORSOrigins:         cfg.Server.CORSOrigins,
		RateLimiter:         rateLimiter,
		AuthMiddleware:      authMiddleware,
		AuthHandler:         authHandler,
		ProductHandler:      productHandler,
		OrderHandler:        orderHandler,
		NotificationHandler: notificationHandler,
	})

	port := cfg.Server.Port
	log.Info("Server listening", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server failed", "error", err)
	}
}
