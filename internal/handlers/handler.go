package handlers

import (
	"social_dashboard/internal/logger"
	"social_dashboard/internal/service"
	"social_dashboard/internal/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires the HTTP layer to services, the realtime hub and logging.
type Handler struct {
	services       *service.Service
	hub            *ws.Hub
	log            *logger.Logger
	uploadsDir     string
	allowedOrigins []string
	upgrader       websocket.Upgrader
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, hub *ws.Hub, log *logger.Logger, uploadsDir string, allowedOrigins []string) *Handler {
	h := &Handler{
		services:       services,
		hub:            hub,
		log:            log,
		uploadsDir:     uploadsDir,
		allowedOrigins: allowedOrigins,
	}
	h.upgrader = websocket.Upgrader{CheckOrigin: h.checkWSOrigin}
	return h
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(h.corsConfig()))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Uploaded profile pictures are public static files
	router.Static("/uploads", h.uploadsDir)

	// Open endpoints: registration, login, realtime channel
	router.POST("/register", h.register)
	router.POST("/login", h.login)
	router.GET("/ws", h.wsConnect)

	// Everything else goes through the auth gate
	authed := router.Group("/", h.authMiddleware)
	{
		authed.GET("/user", h.getUser)
		authed.PUT("/user", h.updateUser)
		authed.POST("/upload-profile-pic", h.uploadProfilePic)

		metrics := authed.Group("/metrics")
		{
			metrics.GET("", h.listMetrics)
			metrics.POST("", h.createMetric)
			metrics.PUT("/:id", h.updateMetric)
			metrics.DELETE("/:id", h.deleteMetric)
		}
	}

	return router
}

// corsConfig restricts cross-origin requests to the configured origin list.
// With no list configured, every origin is allowed (dev fallback).
func (h *Handler) corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	if len(h.allowedOrigins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = h.allowedOrigins
		cfg.AllowCredentials = true
	}
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	return cfg
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}
