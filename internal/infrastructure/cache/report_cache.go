package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/phoneshop/backend/internal/domain/finance"
	"github.com/phoneshop/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const summaryScanBatchSize = 100

// RedisSummaryCache caches financial summaries in Redis, keyed by period
type RedisSummaryCache struct {
	client     *redis.Client
	ownsClient bool // true if we created the client and should close it
	logger     *zap.Logger
}

// RedisSummaryCacheOption is a functional option for configuring the cache
type RedisSummaryCacheOption func(*RedisSummaryCache)

// WithSummaryCacheLogger sets the logger for the cache
func WithSummaryCacheLogger(logger *zap.Logger) RedisSummaryCacheOption {
	return func(c *RedisSummaryCache) {
		c.logger = logger
	}
}

// NewRedisSummaryCache creates a Redis-backed summary cache
func NewRedisSummaryCache(cfg config.RedisConfig, opts ...RedisSummaryCacheOption) (*RedisSummaryCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	cache := &RedisSummaryCache{
		client:     client,
		ownsClient: true,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache, nil
}

// NewRedisSummaryCacheWithClient creates a cache with an existing Redis client.
// The caller retains ownership of the client and is responsible for closing it.
func NewRedisSummaryCacheWithClient(client *redis.Client, opts ...RedisSummaryCacheOption) *RedisSummaryCache {
	cache := &RedisSummaryCache{
		client:     client,
		ownsClient: false,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

// summaryCacheKey generates the cache key for a reporting period
func (c *RedisSummaryCache) summaryCacheKey(from, to time.Time) string {
	return fmt.Sprintf("report:summary:%d:%d", from.Unix(), to.Unix())
}

// Get retrieves a cached summary for the period; nil with no error is a miss
func (c *RedisSummaryCache) Get(ctx context.Context, from, to time.Time) (*finance.FinancialSummary, error) {
	cacheKey := c.summaryCacheKey(from, to)

	data, err := c.client.Get(ctx, cacheKey).Bytes()
	if err == redis.Nil {
		c.logger.Debug("Cache miss for financial summary", zap.String("key", cacheKey))
		return nil, nil
	}
	if err != nil {
		c.logger.Error("Failed to get financial summary from cache",
			zap.String("key", cacheKey),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get summary from cache: %w", err)
	}

	var summary finance.FinancialSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		c.logger.Error("Failed to unmarshal financial summary",
			zap.String("key", cacheKey),
			zap.Error(err))
		// Delete corrupted cache entry
		_ = c.client.Del(ctx, cacheKey)
		return nil, fmt.Errorf("failed to unmarshal summary: %w", err)
	}

	c.logger.Debug("Cache hit for financial summary", zap.String("key", cacheKey))
	return &summary, nil
}

// Set stores a summary in cache for its period
func (c *RedisSummaryCache) Set(ctx context.Context, summary *finance.FinancialSummary, ttl time.Duration) error {
	if summary == nil {
		return nil
	}

	cacheKey := c.summaryCacheKey(summary.From, summary.To)

	data, err := json.Marshal(summary)
	if err != nil {
		c.logger.Error("Failed to marshal financial summary",
			zap.String("key", cacheKey),
			zap.Error(err))
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	if err := c.client.Set(ctx, cacheKey, data, ttl).Err(); err != nil {
		c.logger.Error("Failed to set financial summary in cache",
			zap.String("key", cacheKey),
			zap.Error(err))
		return fmt.Errorf("failed to set summary in cache: %w", err)
	}

	c.logger.Debug("Cached financial summary",
		zap.String("key", cacheKey),
		zap.Duration("ttl", ttl))
	return nil
}

// Invalidate removes every cached summary. Called after writes that change
// the figures behind a report.
func (c *RedisSummaryCache) Invalidate(ctx context.Context) error {
	// Use SCAN to avoid blocking Redis with the KEYS command
	var cursor uint64
	var deletedCount int64

	for {
		var keys []string
		var err error
		keys, cursor, err = c.client.Scan(ctx, cursor, "report:summary:*", summaryScanBatchSize).Result()
		if err != nil {
			c.logger.Error("Failed to scan summary cache keys", zap.Error(err))
			return fmt.Errorf("failed to scan cache keys: %w", err)
		}

		if len(keys) > 0 {
			deleted, err := c.client.Del(ctx, keys...).Result()
			if err != nil {
				c.logger.Error("Failed to delete summary cache keys", zap.Error(err))
				return fmt.Errorf("failed to delete cache keys: %w", err)
			}
			deletedCount += deleted
		}

		if cursor == 0 {
			break
		}
	}

	c.logger.Info("Invalidated financial summary cache",
		zap.Int64("deleted_count", deletedCount))
	return nil
}

// Close releases any resources held by the cache
func (c *RedisSummaryCache) Close() error {
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}
