package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Season reports are cached until the next processing run invalidates
// them.
const seasonReportTTL = 24 * time.Hour

// RedisCache handles caching of processed season reports
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a new Redis cache connection
func NewRedisCache(redisURL string) (*RedisCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{
		client: client,
	}, nil
}

// Close closes the Redis connection
func (rc *RedisCache) Close() error {
	return rc.client.Close()
}

// Client returns the underlying Redis client
func (rc *RedisCache) Client() *redis.Client {
	return rc.client
}

// HealthCheck pings Redis to verify connection
func (rc *RedisCache) HealthCheck(ctx context.Context) error {
	return rc.client.Ping(ctx).Err()
}

func seasonReportKey(seasonID string) string {
	return fmt.Sprintf("victoria:season:%s:report", seasonID)
}

// SetSeasonReport caches a season report as JSON.
func (rc *RedisCache) SetSeasonReport(ctx context.Context, seasonID string, report interface{}) error {
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return rc.client.Set(ctx, seasonReportKey(seasonID), data, seasonReportTTL).Err()
}

// GetSeasonReport loads a cached season report into dest. Returns
// redis.Nil (wrapped) when the season has no cached report.
func (rc *RedisCache) GetSeasonReport(ctx context.Context, seasonID string, dest interface{}) error {
	data, err := rc.client.Get(ctx, seasonReportKey(seasonID)).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(data), dest)
}

// InvalidateSeasonReport drops the cached report for a season.
func (rc *RedisCache) InvalidateSeasonReport(ctx context.Context, seasonID string) error {
	return rc.client.Del(ctx, seasonReportKey(seasonID)).Err()
}
