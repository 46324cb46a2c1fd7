package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// TokenBlacklist reports whether an access token id has been revoked by the
// identity provider.
type TokenBlacklist interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

func blacklistKey(jti string) string {
	return fmt.Sprintf("blacklist:access_token:%s", jti)
}

type RedisTokenBlacklist struct {
	client *redis.Client
}

func NewRedisTokenBlacklist(client *redis.Client) *RedisTokenBlacklist {
	return &RedisTokenBlacklist{client: client}
}

func (b *RedisTokenBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	val, err := b.client.Get(ctx, blacklistKey(jti)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return val == "1", nil
}

type NopTokenBlacklist struct{}

func (NopTokenBlacklist) IsRevoked(context.Context, string) (bool, error) { return false, nil }
