package eventlog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisLog stores events as JSON entries of a Redis list.
type RedisLog struct {
	rdb        *redis.Client
	key        string
	maxEntries int
}

func NewRedisLog(rdb *redis.Client, key string, maxEntries int) *RedisLog {
	return &RedisLog{rdb: rdb, key: key, maxEntries: maxEntries}
}

func (l *RedisLog) Append(ctx context.Context, e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	pipe := l.rdb.TxPipeline()
	pipe.RPush(ctx, l.key, data)
	if l.maxEntries > 0 {
		pipe.LTrim(ctx, l.key, int64(-l.maxEntries), -1)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}
	return nil
}

func (l *RedisLog) List(ctx context.Context, limit int) ([]Event, error) {
	start := int64(0)
	if limit > 0 {
		start = int64(-limit)
	}

	entries, err := l.rdb.LRange(ctx, l.key, start, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read events: %w", err)
	}

	events := make([]Event, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		var e Event
		if err := json.Unmarshal([]byte(entries[i]), &e); err != nil {
			return nil, fmt.Errorf("failed to decode event: %w", err)
		}
		events = append(events, e)
	}
	return events, nil
}
