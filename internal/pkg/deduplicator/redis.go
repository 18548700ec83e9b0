package deduper

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"commentguard/internal/pkg/config"
	"commentguard/internal/pkg/logger"
)

// Implements Deduper with Redis as the backing store, so spam signatures
// are shared across workers and survive restarts.
type redisDeduper struct {
	client   *redis.Client
	redisKey string
}

// Creates a Redis-backed Deduper. Signatures live in a single Redis SET.
func NewRedisDeduper(config *config.Config) (Deduper, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", config.RedisHost, config.RedisPort),
		Password: config.RedisPassword, // "" if no auth
		DB:       config.RedisDB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Log.Error("Failed to connect to Redis", zap.Error(err))
		return nil, err
	}

	logger.Log.Info("Connected to Redis successfully",
		zap.String("host", config.RedisHost),
		zap.String("port", config.RedisPort),
	)

	return &redisDeduper{
		client:   rdb,
		redisKey: "spam_signatures",
	}, nil
}

// Checks membership in the Redis signature set. On error we assume not
// duplicate so a Redis outage never blocks batch analysis.
func (d *redisDeduper) IsDuplicate(signature string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	exists, err := d.client.SIsMember(ctx, d.redisKey, signature).Result()
	if err != nil {
		logger.Log.Error("Redis IsDuplicate check failed", zap.Error(err))
		return false
	}
	return exists
}

// Adds the signature to the Redis SET.
func (d *redisDeduper) StoreSignature(signature string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := d.client.SAdd(ctx, d.redisKey, signature).Err(); err != nil {
		logger.Log.Error("Failed to store signature in Redis", zap.Error(err))
	}
}
