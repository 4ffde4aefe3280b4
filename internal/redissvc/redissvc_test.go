package redissvc

import (
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer rdb.Close()

	svc := NewRedisService(rdb, "inventory:")
	assert.Equal(t, "inventory:snapshot:products", svc.Key("snapshot:products"))
	assert.Same(t, rdb, svc.Rdb())
}
