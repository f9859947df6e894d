package router

import (
	"github.com/gin-gonic/gin"

	"roleplay-chat/backend/internal/api"
	"roleplay-chat/backend/pkg/config"
	"roleplay-chat/backend/pkg/di"
	"roleplay-chat/backend/pkg/errors"
	"roleplay-chat/backend/pkg/logger"
	"roleplay-chat/backend/pkg/middleware"
	"roleplay-chat/backend/pkg/validator"
)

// Router is the main router for the application
type Router struct {
	Engine    *gin.Engine
	Container *di.Container
	Logger    *logger.Logger
	Config    *config.Config
}

// New creates a new router with the given container
func New(container *di.Container) *Router {
	logger.SetGlobal(container.Logger)

	cfg := container.Config
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Logger middleware first to capture all requests
	engine.Use(logger.Middleware(container.Logger))
	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(errors.ErrorHandler())
	engine.Use(errors.RecoveryWithLogger())

	return &Router{
		Engine:    engine,
		Container: container,
		Logger:    container.Logger,
		Config:    cfg,
	}
}

// AddOpenAPIValidation installs request validation against the given schema.
// Requests for paths the schema does not describe pass through untouched.
func (r *Router) AddOpenAPIValidation(schemaPath string) error {
	v, err := validator.NewOpenAPIValidator(schemaPath)
	if err != nil {
		return err
	}
	r.Engine.Use(v.Middleware())
	return nil
}

// SetupRoutes registers all application routes
func (r *Router) SetupRoutes() {
	r.Engine.Use(corsMiddleware(r.Config.Security.AllowedOrigins))

	jwtAuth := middleware.RequireAuth(r.Container.JWTService)
	optionalAuth := middleware.OptionalAuth(r.Container.JWTService)

	characterHandler := api.NewCharacterHandler(r.Container.Characters)
	settingsHandler := api.NewSettingsHandler(r.Container.Settings)
	chatHandler := api.NewChatHandler(r.Container.Chat)
	healthHandler := api.NewHealthHandler(r.Container.Health)

	// Prometheus scrape endpoint, outside the versioned API
	r.Engine.GET("/metrics", gin.WrapH(r.Container.MetricsHandler))

	v1 := r.Engine.Group("/api/v1")

	// Public routes (no auth required)
	publicRoutes := v1.Group("/")
	{
		publicRoutes.GET("/health", healthHandler.Report)

		// Browsing characters works anonymously; creation requires identity
		characterRoutes := publicRoutes.Group("/characters")
		{
			characterRoutes.GET("", optionalAuth, characterHandler.List)
			characterRoutes.GET("/:name", optionalAuth, characterHandler.Get)
			characterRoutes.POST("", jwtAuth, characterHandler.Create)
		}
	}

	// Protected routes (require authentication)
	protectedRoutes := v1.Group("/")
	protectedRoutes.Use(jwtAuth)
	{
		settingsRoutes := protectedRoutes.Group("/settings")
		{
			settingsRoutes.GET("", settingsHandler.LoadActive)
			settingsRoutes.PUT("/:provider", settingsHandler.Save)
		}

		chatRoutes := protectedRoutes.Group("/chat")
		{
			chatRoutes.POST("/:name/sessions", chatHandler.StartSession)
			chatRoutes.GET("/sessions/:id", chatHandler.GetTranscript)
			chatRoutes.POST("/sessions/:id/messages", chatHandler.SendMessage)
		}
	}
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowAll := len(allowedOrigins) == 0
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAll = true
		}
		allowed[origin] = true
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		switch {
		case allowAll:
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		case allowed[origin]:
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept, Accept-Encoding, X-CSRF-Token, Authorization, Origin, Cache-Control")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
