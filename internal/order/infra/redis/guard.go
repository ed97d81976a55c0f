package redis

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

const keyTTL = 24 * time.Hour

// Guard backs the order service's idempotency check with SETNX.
type Guard struct {
	rdb *redis.Client
}

func NewGuard(rdb *redis.Client) *Guard {
	return &Guard{rdb: rdb}
}

func (g *Guard) Claim(ctx context.Context, key string) (bool, error) {
	return g.rdb.SetNX(ctx, "idempotent-key:"+key, "held", keyTTL).Result()
}
