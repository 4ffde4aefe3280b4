// Package redissvc owns the shared Redis client used by the snapshot cache
// and the event log.
package redissvc

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisService struct {
	rdb    *redis.Client
	prefix string
}

// Connect dials Redis at addr and pings it before returning.
func Connect(ctx context.Context, addr, prefix string) (*RedisService, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("could not connect to redis at %s: %w", addr, err)
	}

	return NewRedisService(rdb, prefix), nil
}

func NewRedisService(rdb *redis.Client, prefix string) *RedisService {
	return &RedisService{
		rdb:    rdb,
		prefix: prefix,
	}
}

func (s *RedisService) Rdb() *redis.Client {
	return s.rdb
}

// Key namespaces name under the configured prefix.
func (s *RedisService) Key(name string) string {
	return s.prefix + name
}

func (s *RedisService) Close() error {
	return s.rdb.Close()
}
