package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/artconnect/artconnect-api/internal/imaging"

	"github.com/spf13/viper"
)

// Config holds all configuration for the service
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Auth      AuthConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Upload    UploadConfig
	Images    ImagesConfig
	Logging   LoggingConfig
}

// ServerConfig holds server specific configuration
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	Debug        bool
}

// DatabaseConfig holds database specific configuration
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DSN returns the connection string for the pgx driver
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// RedisConfig holds Redis specific configuration
type RedisConfig struct {
	Enabled     bool
	URL         string
	Password    string
	DB          int
	CacheTTL    time.Duration
	CachePrefix string
}

// KafkaConfig holds Kafka specific configuration
type KafkaConfig struct {
	Enabled        bool
	Brokers        []string
	ClientID       string
	MaxRetryPeriod time.Duration
	Topics         TopicsConfig
}

// TopicsConfig names the topics domain events are published to
type TopicsConfig struct {
	Arts   string
	Events string
	Orders string
}

// AuthConfig holds authentication specific configuration
type AuthConfig struct {
	JWTSecret     string
	TokenDuration time.Duration
}

// CORSConfig holds the allowed origins for browser clients
type CORSConfig struct {
	AllowedOrigins []string
}

// RateLimitConfig holds rate limiting configuration for upload routes
type RateLimitConfig struct {
	Enabled           bool
	RequestsPerMinute int
	BurstSize         int
}

// UploadConfig limits what upload endpoints accept
type UploadConfig struct {
	MaxFileSize       int64
	AllowedExtensions []string
	MaxFiles          int
	MaxPixels         int
	Workers           int
}

// ImagesConfig holds the compression profile per image kind
type ImagesConfig struct {
	Listing imaging.Profile
	Profile imaging.Profile
}

// LoggingConfig holds logging specific configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// LoadConfig loads the configuration from file and environment variables.
// A missing file is not an error; defaults and the environment still apply.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Read config file
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables override, e.g. DATABASE_HOST
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects configurations the service cannot run with
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwtSecret must be set")
	}
	if err := c.Images.Listing.Validate(); err != nil {
		return fmt.Errorf("images.listing: %w", err)
	}
	if err := c.Images.Profile.Validate(); err != nil {
		return fmt.Errorf("images.profile: %w", err)
	}
	if c.Upload.MaxFiles < 1 {
		return errors.New("upload.maxFiles must be at least 1")
	}
	if c.Upload.MaxPixels < 1 {
		return errors.New("upload.maxPixels must be at least 1")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return errors.New("kafka.brokers must be set when kafka is enabled")
	}
	return nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "5000")
	v.SetDefault("server.readTimeout", "30s")
	v.SetDefault("server.writeTimeout", "60s")
	v.SetDefault("server.idleTimeout", "120s")
	v.SetDefault("server.debug", false)

	// Database defaults
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "artconnect")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 5)
	v.SetDefault("database.connMaxLifetime", "30m")

	// Redis defaults
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.url", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.cacheTTL", "5m")
	v.SetDefault("redis.cachePrefix", "artconnect-cache")

	// Kafka defaults
	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.clientID", "artconnect-api")
	v.SetDefault("kafka.maxRetryPeriod", "5s")
	v.SetDefault("kafka.topics.arts", "art-events")
	v.SetDefault("kafka.topics.events", "event-events")
	v.SetDefault("kafka.topics.orders", "order-events")

	// Auth defaults
	v.SetDefault("auth.jwtSecret", "")
	v.SetDefault("auth.tokenDuration", "24h")

	// CORS defaults
	v.SetDefault("cors.allowedOrigins", []string{"*"})

	// Rate limit defaults
	v.SetDefault("rateLimit.enabled", true)
	v.SetDefault("rateLimit.requestsPerMinute", 30)
	v.SetDefault("rateLimit.burstSize", 5)

	// Upload defaults
	v.SetDefault("upload.maxFileSize", 10<<20)
	v.SetDefault("upload.allowedExtensions", imaging.DefaultAllowedExtensions)
	v.SetDefault("upload.maxFiles", 3)
	v.SetDefault("upload.maxPixels", imaging.DefaultMaxPixels)
	v.SetDefault("upload.workers", 3)

	// Image profile defaults
	setProfileDefaults(v, "images.listing", imaging.ListingProfile())
	setProfileDefaults(v, "images.profile", imaging.ProfileImageProfile())

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

func setProfileDefaults(v *viper.Viper, key string, p imaging.Profile) {
	v.SetDefault(key+".name", p.Name)
	v.SetDefault(key+".targetWidth", p.TargetWidth)
	v.SetDefault(key+".targetHeight", p.TargetHeight)
	v.SetDefault(key+".maxOutputBytes", p.MaxOutputBytes)
	v.SetDefault(key+".initialQuality", p.InitialQuality)
	v.SetDefault(key+".maxQuality", p.MaxQuality)
	v.SetDefault(key+".qualityStep", p.QualityStep)
	v.SetDefault(key+".qualityFloor", p.QualityFloor)
	v.SetDefault(key+".format", p.Format)
}
