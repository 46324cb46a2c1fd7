package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"

	"baseware/internal/models"
)

// CategoryCache holds categories looked up by (code, name). Failures are
// logged and treated as misses so the database stays the source of truth.
type CategoryCache interface {
	Get(ctx context.Context, code models.CategoryCode, name string) (*models.Category, bool)
	Set(ctx context.Context, category *models.Category)
	Invalidate(ctx context.Context, code models.CategoryCode, name string)
}

func categoryKey(code models.CategoryCode, name string) string {
	return fmt.Sprintf("category:%s:%s", code, name)
}

type RedisCategoryCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCategoryCache(client *redis.Client, ttl time.Duration) *RedisCategoryCache {
	return &RedisCategoryCache{client: client, ttl: ttl}
}

func (c *RedisCategoryCache) Get(ctx context.Context, code models.CategoryCode, name string) (*models.Category, bool) {
	raw, err := c.client.Get(ctx, categoryKey(code, name)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.WarnContext(ctx, "category cache read failed", "code", code, "name", name, "error", err)
		}
		return nil, false
	}
	var category models.Category
	if err := json.Unmarshal(raw, &category); err != nil {
		slog.WarnContext(ctx, "category cache entry corrupt", "code", code, "name", name, "error", err)
		return nil, false
	}
	return &category, true
}

func (c *RedisCategoryCache) Set(ctx context.Context, category *models.Category) {
	raw, err := json.Marshal(category)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, categoryKey(category.Code, category.Name), raw, c.ttl).Err(); err != nil {
		slog.WarnContext(ctx, "category cache write failed", "id", category.ID, "error", err)
	}
}

func (c *RedisCategoryCache) Invalidate(ctx context.Context, code models.CategoryCode, name string) {
	if err := c.client.Del(ctx, categoryKey(code, name)).Err(); err != nil {
		slog.WarnContext(ctx, "category cache invalidate failed", "code", code, "name", name, "error", err)
	}
}

// NopCategoryCache never holds anything. Used when Redis is not configured.
type NopCategoryCache struct{}

func (NopCategoryCache) Get(context.Context, models.CategoryCode, string) (*models.Category, bool) {
	return nil, false
}
func (NopCategoryCache) Set(context.Context, *models.Category)                    {}
func (NopCategoryCache) Invalidate(context.Context, models.CategoryCode, string) {}
