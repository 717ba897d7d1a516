package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/artconnect/artconnect-api/internal/config"
	"github.com/artconnect/artconnect-api/internal/events"
	"github.com/artconnect/artconnect-api/internal/handler"
	"github.com/artconnect/artconnect-api/internal/imaging"
	"github.com/artconnect/artconnect-api/internal/middleware"
	"github.com/artconnect/artconnect-api/internal/repository"
	"github.com/artconnect/artconnect-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	// .env is optional; real environment variables win
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to load .env: %v", err)
	}

	// Load configuration
	cfg, err := config.LoadConfig("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Set up logger
	logger, err := createLogger(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	if !cfg.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := connectToDB(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Redis is optional; without it listings are served uncached
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = setupRedis(cfg.Redis, logger)
		if err != nil {
			logger.Warn("Continuing without Redis cache", zap.Error(err))
		}
	}

	publisher := setupPublisher(cfg.Kafka, logger)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db, logger)
	artRepo := repository.NewArtRepository(db, logger)
	eventRepo := repository.NewEventRepository(db, logger)
	socialRepo := repository.NewSocialRepository(db, logger)
	orderRepo := repository.NewOrderRepository(db, logger)

	compressor := imaging.NewCompressor(logger,
		imaging.WithWorkers(cfg.Upload.Workers),
		imaging.WithMaxFiles(cfg.Upload.MaxFiles),
		imaging.WithMaxPixels(cfg.Upload.MaxPixels),
		imaging.WithAllowedExtensions(cfg.Upload.AllowedExtensions),
	)
	cache := middleware.NewResponseCache(redisClient, cfg.Redis.CachePrefix)

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.Auth, logger)
	userService := service.NewUserService(service.UserServiceDeps{
		Users:        userRepo,
		Arts:         artRepo,
		Events:       eventRepo,
		Social:       socialRepo,
		Orders:       orderRepo,
		Compressor:   compressor,
		ImageProfile: cfg.Images.Profile,
		Publisher:    publisher,
		OrderTopic:   cfg.Kafka.Topics.Orders,
	}, logger)
	artService := service.NewArtService(artRepo, service.ListingDeps{
		Users:      userRepo,
		Compressor: compressor,
		Profile:    cfg.Images.Listing,
		Publisher:  publisher,
		Topic:      cfg.Kafka.Topics.Arts,
		Cache:      cache,
	}, logger)
	eventService := service.NewEventService(eventRepo, service.ListingDeps{
		Users:      userRepo,
		Compressor: compressor,
		Profile:    cfg.Images.Listing,
		Publisher:  publisher,
		Topic:      cfg.Kafka.Topics.Events,
		Cache:      cache,
	}, logger)

	router := handler.NewRouter(handler.RouterDeps{
		Auth:   authService,
		Users:  userService,
		Arts:   artService,
		Events: eventService,
		Redis:  redisClient,
		Config: cfg,
		Logger: logger,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	if err := publisher.Close(); err != nil {
		logger.Error("Failed to close event publisher", zap.Error(err))
	}
	if redisClient != nil {
		redisClient.Close()
	}

	logger.Info("Server exited properly")
}

func createLogger(level, format string) (*zap.Logger, error) {
	zapLevel := zap.NewAtomicLevelAt(zap.InfoLevel)
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		log.Printf("Unknown log level %q, using info", level)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	encoding := "json"
	if format == "console" {
		encoding = "console"
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	config := zap.Config{
		Level:            zapLevel,
		Development:      false,
		Encoding:         encoding,
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}

func connectToDB(dbConfig config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.Connect("pgx", dbConfig.DSN())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(dbConfig.MaxOpenConns)
	db.SetMaxIdleConns(dbConfig.MaxIdleConns)
	db.SetConnMaxLifetime(dbConfig.ConnMaxLifetime)

	return db, nil
}

// setupRedis connects to Redis, accepting either a redis:// URL or host:port
func setupRedis(cfg config.RedisConfig, logger *zap.Logger) (*redis.Client, error) {
	options, err := redis.ParseURL(cfg.URL)
	if err != nil {
		options = &redis.Options{
			Addr:     cfg.URL,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}

	client := redis.NewClient(options)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	logger.Info("Connected to Redis", zap.String("addr", options.Addr))
	return client, nil
}

func setupPublisher(cfg config.KafkaConfig, logger *zap.Logger) events.Publisher {
	if !cfg.Enabled {
		logger.Info("Kafka disabled, domain events are dropped")
		return events.NopPublisher{}
	}

	logger.Info("Initialized Kafka producer", zap.Strings("brokers", cfg.Brokers))
	return events.NewKafkaProducer(cfg.Brokers, cfg.ClientID, cfg.MaxRetryPeriod, logger)
}
