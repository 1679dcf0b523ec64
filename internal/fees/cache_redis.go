package fees

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	appmodels "licensing/internal/application/models"
	"licensing/internal/platform/metrics"
	testmodels "licensing/internal/testcenter/models"
	id "licensing/pkg/domain"
)

const (
	defaultCacheTTL = 10 * time.Minute
	keyPrefix       = "licensing:fees:"
)

// RedisCache is a read-through cache in front of a Source. Reference rows
// change only on deploy, so a short TTL is the only invalidation. Concurrent
// misses for the same key collapse into one Source read. A Redis failure
// degrades to reading the Source directly.
type RedisCache struct {
	next    Source
	client  redis.Cmdable
	ttl     time.Duration
	group   singleflight.Group
	metrics *metrics.Metrics
}

type CacheOption func(*RedisCache)

func WithTTL(ttl time.Duration) CacheOption {
	return func(c *RedisCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func WithCacheMetrics(m *metrics.Metrics) CacheOption {
	return func(c *RedisCache) {
		c.metrics = m
	}
}

func NewRedisCache(next Source, client redis.Cmdable, opts ...CacheOption) *RedisCache {
	c := &RedisCache{next: next, client: client, ttl: defaultCacheTTL}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *RedisCache) FindApplicationTypeByID(ctx context.Context, typeID id.ApplicationTypeID) (*appmodels.ApplicationType, error) {
	return readThrough(ctx, c, fmt.Sprintf("%sapptype:%d", keyPrefix, typeID), func(ctx context.Context) (*appmodels.ApplicationType, error) {
		return c.next.FindApplicationTypeByID(ctx, typeID)
	})
}

func (c *RedisCache) FindLicenseClassByID(ctx context.Context, classID id.LicenseClassID) (*appmodels.LicenseClass, error) {
	return readThrough(ctx, c, fmt.Sprintf("%sclass:%d", keyPrefix, classID), func(ctx context.Context) (*appmodels.LicenseClass, error) {
		return c.next.FindLicenseClassByID(ctx, classID)
	})
}

func (c *RedisCache) FindTestTypeByID(ctx context.Context, testType id.TestTypeID) (*testmodels.TestType, error) {
	return readThrough(ctx, c, fmt.Sprintf("%stesttype:%d", keyPrefix, testType), func(ctx context.Context) (*testmodels.TestType, error) {
		return c.next.FindTestTypeByID(ctx, testType)
	})
}

// Invalidate drops every cached fee row.
func (c *RedisCache) Invalidate(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, keyPrefix+"*", 100).Result()
		if err != nil {
			return fmt.Errorf("scan fee cache: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("delete fee cache keys: %w", err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

func readThrough[T any](ctx context.Context, c *RedisCache, key string, load func(context.Context) (*T, error)) (*T, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached T
		if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
			c.metrics.IncFeeCache("hit")
			return &cached, nil
		}
		c.metrics.IncFeeCache("error")
	case errors.Is(err, redis.Nil):
		c.metrics.IncFeeCache("miss")
	default:
		c.metrics.IncFeeCache("error")
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		row, err := load(ctx)
		if err != nil {
			return nil, err
		}
		if payload, err := json.Marshal(row); err == nil {
			_ = c.client.Set(ctx, key, payload, c.ttl).Err()
		}
		return row, nil
	})
	if err != nil {
		return nil, err
	}
	row := *v.(*T)
	return &row, nil
}
