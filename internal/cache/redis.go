package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/airbooking-gateway/config"
	"github.com/Domenick1991/airbooking-gateway/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisCache keeps Flight service answers for a short TTL. A miss is
// reported as (nil, nil).
type RedisCache struct {
	client     *redis.Client
	flightsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		flightsTTL: cfg.CacheTTL(),
	}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) GetFlight(ctx context.Context, number string) (*domain.Flight, error) {
	var flight domain.Flight
	ok, err := c.get(ctx, flightKey(number), &flight)
	if err != nil || !ok {
		return nil, err
	}
	return &flight, nil
}

func (c *RedisCache) SetFlight(ctx context.Context, flight *domain.Flight) error {
	return c.set(ctx, flightKey(flight.FlightNumber), flight)
}

func (c *RedisCache) GetFlightPage(ctx context.Context, page, size int) (*domain.FlightPage, error) {
	var result domain.FlightPage
	ok, err := c.get(ctx, flightPageKey(page, size), &result)
	if err != nil || !ok {
		return nil, err
	}
	return &result, nil
}

func (c *RedisCache) SetFlightPage(ctx context.Context, page, size int, result *domain.FlightPage) error {
	return c.set(ctx, flightPageKey(page, size), result)
}

func (c *RedisCache) get(ctx context.Context, key string, dst any) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (c *RedisCache) set(ctx context.Context, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, c.flightsTTL).Err()
}

func flightKey(number string) string {
	return "cache:flight:" + number
}

func flightPageKey(page, size int) string {
	return fmt.Sprintf("cache:flights:page:%d:size:%d", page, size)
}
