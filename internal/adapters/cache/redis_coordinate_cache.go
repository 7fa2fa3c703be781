package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"order-ranking-service/internal/domain"
	"time"

	"github.com/redis/go-redis/v9"
)

const coordinateKeyPrefix = "geocode:"

type cachedCoordinates struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// RedisCoordinateCache stores coordinates in Redis, relying on key expiry for the TTL.
type RedisCoordinateCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCoordinateCache connects to Redis and verifies the connection.
func NewRedisCoordinateCache(ctx context.Context, addr, password string, db int, ttl time.Duration) (*RedisCoordinateCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis coordinate cache: ping %s: %w", addr, err)
	}

	return &RedisCoordinateCache{client: client, ttl: ttl}, nil
}

func coordinateKey(address string) string {
	return coordinateKeyPrefix + address
}

func (c *RedisCoordinateCache) Get(ctx context.Context, address string) (domain.Coordinates, bool, error) {
	data, err := c.client.Get(ctx, coordinateKey(address)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Coordinates{}, false, nil
	}
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("get redis coordinate cache: %w", err)
	}

	var cached cachedCoordinates
	if err := json.Unmarshal(data, &cached); err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("get redis coordinate cache: unmarshal %q: %w", address, err)
	}

	return domain.Coordinates{Lon: cached.Lon, Lat: cached.Lat}, true, nil
}

func (c *RedisCoordinateCache) Set(ctx context.Context, address string, coords domain.Coordinates) error {
	data, err := json.Marshal(cachedCoordinates{Lon: coords.Lon, Lat: coords.Lat})
	if err != nil {
		return fmt.Errorf("set redis coordinate cache: marshal: %w", err)
	}

	if err := c.client.Set(ctx, coordinateKey(address), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("set redis coordinate cache: %w", err)
	}

	return nil
}

func (c *RedisCoordinateCache) Close() error {
	return c.client.Close()
}
