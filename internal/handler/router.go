package handler

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/artconnect/artconnect-api/internal/config"
	"github.com/artconnect/artconnect-api/internal/middleware"
	"github.com/artconnect/artconnect-api/internal/model"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RouterDeps is everything the HTTP layer needs. Redis may be nil.
type RouterDeps struct {
	Auth   AuthAPI
	Users  UserAPI
	Arts   ArtAPI
	Events EventAPI
	Redis  *redis.Client
	Config *config.Config
	Logger *zap.Logger
}

// NewRouter builds the gin engine with all routes registered
func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	logger := deps.Logger

	if err := RegisterValidators(); err != nil {
		logger.Error("Failed to register validators", zap.Error(err))
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New())
	router.Use(cors.New(corsConfig(cfg.CORS.AllowedOrigins)))
	router.Use(middleware.Logger(logger))

	router.GET("/health", func(c *gin.Context) {
		status := "healthy"
		if deps.Redis != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
			defer cancel()
			if err := deps.Redis.Ping(ctx).Err(); err != nil {
				status = "degraded"
				logger.Warn("Redis health check failed", zap.Error(err))
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status": status,
			"redis":  deps.Redis != nil,
		})
	})

	limits := UploadLimits{MaxFiles: cfg.Upload.MaxFiles, MaxFileSize: cfg.Upload.MaxFileSize}
	authRequired := middleware.AuthMiddleware(deps.Auth, logger)
	artistOnly := middleware.RequireUserType(model.UserTypeArtist)

	uploadLimit := func(c *gin.Context) { c.Next() }
	if cfg.RateLimit.Enabled {
		uploadLimit = middleware.RateLimit(middleware.NewRateLimiter(
			cfg.RateLimit.RequestsPerMinute,
			cfg.RateLimit.BurstSize,
		))
	}

	cache := middleware.RedisCache(deps.Redis, middleware.CacheConfig{
		Enabled:         cfg.Redis.Enabled,
		DefaultDuration: cfg.Redis.CacheTTL,
		PrefixKey:       cfg.Redis.CachePrefix,
	}, logger)

	api := router.Group("/api")

	userHandler := NewUserHandler(deps.Auth, deps.Users, limits, logger)
	users := api.Group("/users")
	{
		users.POST("/register", userHandler.Register)
		users.POST("/login", userHandler.Login)
		users.POST("/logout", authRequired, userHandler.Logout)
		users.GET("/details/:id", userHandler.GetDetails)
		users.POST("/update-image/:id", authRequired, middleware.RequireSelf("id"), uploadLimit, userHandler.UpdateImage)
		users.POST("/toggle-favorite/:userId/:itemId/:itemType", authRequired, middleware.RequireSelf("userId"), userHandler.ToggleFavorite)
		users.GET("/favorites/:userId", userHandler.GetFavorites)
		users.POST("/toggle-follow/:userId/:artistId", authRequired, middleware.RequireSelf("userId"), userHandler.ToggleFollow)
		users.POST("/complete-order", authRequired, userHandler.CompleteOrder)
	}

	artHandler := NewArtHandler(deps.Arts, limits, logger)
	arts := api.Group("/arts")
	{
		arts.POST("", authRequired, artistOnly, uploadLimit, artHandler.Create)
		arts.GET("", cache, artHandler.List)
		arts.GET("/:id", cache, artHandler.Get)
		arts.PATCH("/:id", authRequired, artHandler.SetAvailability)
	}

	eventHandler := NewEventHandler(deps.Events, limits, logger)
	events := api.Group("/events")
	{
		events.POST("", authRequired, artistOnly, uploadLimit, eventHandler.Create)
		events.GET("", cache, eventHandler.List)
		events.GET("/:id", cache, eventHandler.Get)
		events.PATCH("/:id", authRequired, eventHandler.SetAvailability)
	}

	return router
}

// corsConfig allows credentials only for an explicit origin list. Browsers
// refuse credentialed responses that carry a wildcard origin.
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID", "X-Cache"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
