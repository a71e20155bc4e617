package config

import (
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

// ConnectRedis establishes a connection to Redis for rate limiting counters.
// Redis is optional: when REDIS_URL is empty the client stays nil and the
// rate limiter fails open.
func ConnectRedis(cfg *Config) error {
	if cfg.RedisURL == "" {
		log.Println("REDIS_URL not set, rate limiting counters disabled")
		return nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("failed to parse REDIS_URL: %w", err)
	}

	redisClient = redis.NewClient(opts)
	log.Println("Redis client configured for", opts.Addr)
	return nil
}

// GetRedis returns the Redis client, which may be nil when Redis is not configured
func GetRedis() *redis.Client {
	return redisClient
}

// SetRedis replaces the Redis client (used by tests)
func SetRedis(client *redis.Client) {
	redisClient = client
}
