package di

import (
	"context"
	"net/http"
	"time"

	"roleplay-chat/backend/internal/llm"
	"roleplay-chat/backend/internal/repository"
	"roleplay-chat/backend/internal/service"
	"roleplay-chat/backend/pkg/config"
	"roleplay-chat/backend/pkg/health"
	"roleplay-chat/backend/pkg/jwt"
	"roleplay-chat/backend/pkg/logger"
	"roleplay-chat/backend/pkg/observability"
	"roleplay-chat/backend/pkg/secrets"

	"github.com/redis/go-redis/v9"
)

// Container holds all the dependencies for the application
type Container struct {
	Config         *config.Config
	Logger         *logger.Logger
	JWTService     *jwt.Service
	Redis          *redis.Client
	Metrics        *observability.Metrics
	MetricsHandler http.Handler
	Characters     *service.CharacterService
	Settings       *service.SettingsService
	Sessions       *service.SessionStore
	Chat           *service.ChatService
	Health         *health.Checker
}

// New creates a new dependency injection container
func New(cfg *config.Config, log *logger.Logger) (*Container, error) {
	// Secrets may live in Vault; fall back to the environment-sourced config
	if err := secrets.Init(log); err != nil {
		log.LogError(err, "secrets manager unavailable, using environment only")
	}
	ctx := context.Background()
	cloudinarySecret := secrets.GetSecretWithDefault(ctx, "cloudinary-api-secret", cfg.Cloudinary.APISecret)
	jwtSecret := secrets.GetSecretWithDefault(ctx, "jwt-secret", cfg.JWT.Secret)

	metrics := observability.NewMetrics()
	_, metricsHandler := observability.SetupPrometheusMetrics(log)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	store := repository.NewCloudinary(cfg, cloudinarySecret, log, metrics)
	characters := service.NewCharacterService(store, log)
	settings := service.NewSettingsService(redisClient, log)

	registry := llm.NewRegistry(cfg)
	dispatcher := llm.NewDispatcher(registry, log, metrics)

	sessions := service.NewSessionStore(cfg.Sessions.TTL, cfg.Sessions.PurgeWindow, cfg.Sessions.MaxSessions)
	chat := service.NewChatService(characters, settings, dispatcher, sessions, log)

	checker := health.NewChecker(log, 30*time.Second)
	checker.RegisterStoreCheck(func() error {
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return settings.Ping(pingCtx)
	})

	return &Container{
		Config:         cfg,
		Logger:         log,
		JWTService:     jwt.NewService(jwtSecret, 0),
		Redis:          redisClient,
		Metrics:        metrics,
		MetricsHandler: metricsHandler,
		Characters:     characters,
		Settings:       settings,
		Sessions:       sessions,
		Chat:           chat,
		Health:         checker,
	}, nil
}
