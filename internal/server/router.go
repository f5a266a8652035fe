package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/sallatna/sallatna-backend/internal/handlers"
	"github.com/sallatna/sallatna-backend/internal/middleware"
	"github.com/sallatna/sallatna-backend/internal/types"
)

type RouterConfig struct {
	CORSOrigins         []string
	RateLimiter         *middleware.RateLimiter
	AuthMiddleware      *middleware.AuthMiddleware
	AuthHandler         *handlers.AuthHandler
	ProductHandler      *handlers.ProductHandler
	OrderHandler        *handlers.OrderHandler
	NotificationHandler *handlers.NotificationHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.RequestID())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))
	if cfg.RateLimiter != nil {
		router.Use(cfg.RateLimiter.Handler())
	}

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")

	// Public
	api.POST("/auth/register", cfg.AuthHandler.Register)
	api.POST("/auth/login", cfg.AuthHandler.Login)
	api.POST("/auth/logout", cfg.AuthHandler.Logout)
	api.GET("/products", cfg.ProductHandler.List)
	api.GET("/products/:id", cfg.ProductHandler.Get)

	// Authenticated
	authed := api.Group("")
	authed.Use(cfg.AuthMiddleware.RequireAuth())
	authed.GET("/auth/me", cfg.AuthHandler.Me)
	authed.GET("/orders", cfg.OrderHandler.List)
	authed.POST("/orders", cfg.OrderHandler.Create)
	authed.GET("/notifications", cfg.NotificationHandler.List)
	authed.POST("/notifications/:id/read", cfg.NotificationHandler.MarkRead)

	// Family sellers only
	family := authed.Group("")
	family.Use(cfg.AuthMiddleware.RequireRole(types.RoleFamily))
	family.POST("/products", cfg.ProductHandler.Create)
	family.PATCH("/orders/:id/status", cfg.OrderHandler.UpdateStatus)

	return router
}
