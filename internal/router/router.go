package router

import (
	"context"
	"log/slog"

	"github.com/anonto42/faithconnect/backend/internal/handlers"
	"github.com/anonto42/faithconnect/backend/internal/middleware"
	"github.com/anonto42/faithconnect/backend/pkg/config"
	"github.com/anonto42/faithconnect/backend/validators"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
)

// New builds the echo instance with middleware and routes. rdb may be nil,
// which disables rate limiting.
func New(cfg *config.Config, log *slog.Logger, svcs *Services, rdb redis.Cmdable) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validators.NewValidator()
	e.JSONSerializer = sonicSerializer{}
	e.HTTPErrorHandler = errorHandler(log)

	SetupMiddleware(e, cfg, log, rdb)
	SetupRoutes(e, svcs, log)
	return e
}

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, cfg *config.Config, log *slog.Logger, rdb redis.Cmdable) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(eMiddleware.RequestIDWithConfig(eMiddleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(eMiddleware.RequestLoggerWithConfig(eMiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v eMiddleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Error != nil {
				level = slog.LevelError
			}
			log.LogAttrs(context.Background(), level, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			)
			return nil
		},
	}))
	if rdb != nil && cfg.RateLimitPerMinute > 0 {
		e.Use(middleware.RateLimit(rdb, cfg.RateLimitPerMinute, log))
		log.Info("rate limiting enabled", "per_minute", cfg.RateLimitPerMinute)
	}
	log.Info("global middleware configured")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, svcs *Services, log *slog.Logger) {
	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)
	if svcs.UploadDir != "" {
		e.Static("/uploads", svcs.UploadDir)
	}

	// --- Unprotected routes for authentication ---
	authHandler := handlers.NewAuthHandler(svcs.Auth)
	authHandler.RegisterAuthRoutes(e.Group("/auth"))
	log.Info("auth routes configured")

	// --- Protected routes (require bearer authentication) ---
	api := e.Group("", middleware.JWTAuthMiddleware(svcs.Auth))
	authHandler.RegisterProfileRoutes(api)

	handlers.NewFollowHandler(svcs.Follows).RegisterFollowRoutes(api)
	log.Info("follow routes configured")

	handlers.NewLeaderHandler(svcs.Leaders).RegisterLeaderRoutes(api)
	log.Info("leader routes configured")

	handlers.NewPostHandler(svcs.Posts).RegisterPostRoutes(api)
	log.Info("post routes configured")

	handlers.NewEngagementHandler(svcs.Engagement).RegisterEngagementRoutes(api)
	handlers.NewCommentHandler(svcs.Comments).RegisterCommentRoutes(api)
	log.Info("engagement routes configured")

	handlers.NewChatHandler(svcs.Chats).RegisterChatRoutes(api)
	log.Info("chat routes configured")

	handlers.NewQuestionHandler(svcs.Questions).RegisterQuestionRoutes(api)
	log.Info("question routes configured")

	handlers.NewNotificationHandler(svcs.Notifications).RegisterNotificationRoutes(api)
	log.Info("notification routes configured")

	handlers.NewFeedHandler(svcs.Feed).RegisterFeedRoutes(api)
	log.Info("feed routes configured")

	handlers.NewMediaHandler(svcs.Media).RegisterMediaRoutes(api)
	log.Info("media routes configured")

	log.Info("all routes configured")
}
