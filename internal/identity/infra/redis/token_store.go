package redis

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

const sessionTTL = 24 * time.Hour

// TokenStore mirrors issued JWTs keyed by username with the token's TTL.
type TokenStore struct {
	rdb *redis.Client
}

func NewTokenStore(rdb *redis.Client) *TokenStore {
	return &TokenStore{rdb: rdb}
}

func (s *TokenStore) Save(ctx context.Context, username, token string) error {
	return s.rdb.Set(ctx, "session:"+username, token, sessionTTL).Err()
}
