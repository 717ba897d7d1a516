package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CacheConfig holds configuration for the cache middleware
type CacheConfig struct {
	Enabled         bool
	DefaultDuration time.Duration
	PrefixKey       string
}

// RedisCache caches successful GET responses in Redis. A nil client
// disables it.
func RedisCache(redisClient *redis.Client, config CacheConfig, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if redisClient == nil || !config.Enabled || c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		cacheKey := generateCacheKey(config.PrefixKey, c.Request.URL.Path, c.Request.URL.RawQuery)
		ctx := c.Request.Context()

		cachedResponse, err := redisClient.Get(ctx, cacheKey).Bytes()
		if err == nil {
			logger.Debug("Cache hit",
				zap.String("path", c.Request.URL.Path),
				zap.String("cache_key", cacheKey))

			c.Writer.Header().Set("Content-Type", "application/json; charset=utf-8")
			c.Writer.Header().Set("X-Cache", "HIT")
			c.Writer.WriteHeader(http.StatusOK)
			c.Writer.Write(cachedResponse)
			c.Abort()
			return
		}
		if err != redis.Nil {
			logger.Warn("Cache read failed", zap.Error(err), zap.String("cache_key", cacheKey))
		}

		writer := &responseWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
		}
		c.Writer = writer
		c.Writer.Header().Set("X-Cache", "MISS")

		c.Next()

		if c.Writer.Status() != http.StatusOK {
			return
		}

		// the request context may already be done once the handler returned
		setCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := redisClient.Set(setCtx, cacheKey, writer.body.Bytes(), config.DefaultDuration).Err(); err != nil {
			logger.Error("Failed to set cache",
				zap.Error(err),
				zap.String("cache_key", cacheKey))
			return
		}
		logger.Debug("Cache set",
			zap.String("path", c.Request.URL.Path),
			zap.String("cache_key", cacheKey),
			zap.Duration("duration", config.DefaultDuration))
	}
}

// responseWriter captures the response body for caching
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// generateCacheKey hashes path and query into a key under prefix
func generateCacheKey(prefix, path, rawQuery string) string {
	hash := sha256.New()
	if rawQuery != "" {
		io.WriteString(hash, path+"?"+rawQuery)
	} else {
		io.WriteString(hash, path)
	}
	return prefix + ":" + hex.EncodeToString(hash.Sum(nil))
}

// FlushCache clears the cached response of one path, or every cached
// response under prefix when path is empty
func FlushCache(ctx context.Context, redisClient *redis.Client, prefix string, path string) error {
	if path != "" {
		return redisClient.Del(ctx, generateCacheKey(prefix, path, "")).Err()
	}

	iter := redisClient.Scan(ctx, 0, prefix+":*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return redisClient.Del(ctx, keys...).Err()
}

// ResponseCache flushes every cached listing response after a write
type ResponseCache struct {
	client *redis.Client
	prefix string
}

// NewResponseCache returns a cache flusher; a nil client makes Flush a no-op
func NewResponseCache(client *redis.Client, prefix string) *ResponseCache {
	return &ResponseCache{client: client, prefix: prefix}
}

// Flush drops all cached responses
func (r *ResponseCache) Flush(ctx context.Context) error {
	if r == nil || r.client == nil {
		return nil
	}
	return FlushCache(ctx, r.client, r.prefix, "")
}
