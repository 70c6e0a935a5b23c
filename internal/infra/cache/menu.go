package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"restobook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const menuKeyPrefix = "menu:"

// MenuCache is a read-through layer over the Postgres menu store. A cache
// failure degrades to a database read, never to an error.
type MenuCache struct {
	client *redis.Client
	inner  queries.MenuReadStore
	ttl    time.Duration
}

func NewMenuCache(client *redis.Client, inner queries.MenuReadStore, ttl time.Duration) *MenuCache {
	return &MenuCache{client: client, inner: inner, ttl: ttl}
}

func (c *MenuCache) FindByID(ctx context.Context, id uuid.UUID) (*queries.MenuItemView, error) {
	key := menuKeyPrefix + "item:" + id.String()

	var cached queries.MenuItemView
	if c.lookup(ctx, key, &cached) {
		return &cached, nil
	}

	view, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, view)
	return view, nil
}

func (c *MenuCache) FindAll(ctx context.Context) ([]*queries.MenuItemView, error) {
	return c.cachedList(ctx, menuKeyPrefix+"all", c.inner.FindAll)
}

func (c *MenuCache) FindByCategory(ctx context.Context, category string) ([]*queries.MenuItemView, error) {
	return c.cachedList(ctx, menuKeyPrefix+"category:"+category, func(ctx context.Context) ([]*queries.MenuItemView, error) {
		return c.inner.FindByCategory(ctx, category)
	})
}

func (c *MenuCache) FindAvailable(ctx context.Context) ([]*queries.MenuItemView, error) {
	return c.cachedList(ctx, menuKeyPrefix+"available", c.inner.FindAvailable)
}

// Invalidate drops every cached menu key after a menu write commits.
func (c *MenuCache) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, menuKeyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *MenuCache) cachedList(ctx context.Context, key string, load func(ctx context.Context) ([]*queries.MenuItemView, error)) ([]*queries.MenuItemView, error) {
	var cached []*queries.MenuItemView
	if c.lookup(ctx, key, &cached) {
		return cached, nil
	}

	views, err := load(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, views)
	return views, nil
}

func (c *MenuCache) lookup(ctx context.Context, key string, dest any) bool {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("menu cache read failed", "key", key, "error", err.Error())
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		slog.Warn("menu cache entry corrupt", "key", key, "error", err.Error())
		return false
	}
	return true
}

func (c *MenuCache) store(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		slog.Warn("menu cache write failed", "key", key, "error", err.Error())
	}
}
