package cache

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/spf13/viper"
	"golang.org/x/sync/singleflight"

	"github.com/cloudscheduler/console/pkg/cache/client"
	"github.com/cloudscheduler/console/pkg/util/str"
)

var ErrMarshal = errors.New("[cache.MultiCache.Set] marshal error")

// MultiCache layers a local in-process cache in front of a shared one.
// Reads try layers in priority order and backfill higher layers on a hit.
type MultiCache[T any] interface {
	Get(ctx context.Context, key string) (T, error)
	Set(ctx context.Context, key string, value T, expire time.Duration) error
	Del(ctx context.Context, key string) error
	GetAndSet(ctx context.Context, key string, expire time.Duration, fn func() (T, error)) (T, error)
	GetAndSingleSet(ctx context.Context, key string, expire time.Duration, fn func() (T, error)) (T, error)
}

type multiCache[T any] struct {
	cache  []client.Cache
	sf     singleflight.Group
	prefix string
	expire time.Duration
}

func (m *multiCache[T]) buildKey(key string) string {
	return strings.ToUpper(fmt.Sprintf("%s:%s", m.prefix, str.RemoveSpace(key)))
}

func (m *multiCache[T]) Get(ctx context.Context, key string) (T, error) {
	var result T
	var errVals []error
	cacheKey := m.buildKey(key)

	for i, c := range m.cache {
		value, err := c.Get(ctx, cacheKey)
		if err != nil {
			if errors.Is(err, client.ErrNotFound) {
				continue
			}
			errVals = append(errVals, fmt.Errorf("[cache.MultiCache.Get] %s cache error: %w", c.GetName(), err))
			continue
		}
		if value == nil {
			continue
		}

		if err := sonic.Unmarshal(value, &result); err != nil {
			errVals = append(errVals, fmt.Errorf("[cache.MultiCache.Get] unmarshal from %s cache failed: %w", c.GetName(), err))
			continue
		}

		// Backfill faster layers asynchronously; errors there do not
		// affect the caller.
		if i > 0 {
			go func(cacheKey string, value []byte, caches []client.Cache) {
				for _, cc := range caches {
					_ = cc.Set(context.Background(), cacheKey, value, m.expire)
				}
			}(cacheKey, value, m.cache[:i])
		}

		return result, nil
	}

	if len(errVals) > 0 {
		return result, errors.Join(errVals...)
	}

	return result, client.ErrNotFound
}

func (m *multiCache[T]) Set(ctx context.Context, key string, value T, expire time.Duration) error {
	cacheKey := m.buildKey(key)

	cacheValue, err := sonic.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMarshal, err)
	}

	if expire <= 0 {
		expire = m.expire
	}

	var errVals []error
	for _, c := range m.cache {
		if err := c.Set(ctx, cacheKey, cacheValue, expire); err != nil {
			errVals = append(errVals, fmt.Errorf("[cache.MultiCache.Set] %s cache error: %w", c.GetName(), err))
		}
	}

	if len(errVals) > 0 {
		return errors.Join(errVals...)
	}

	return nil
}

func (m *multiCache[T]) Del(ctx context.Context, key string) error {
	var errVals []error
	cacheKey := m.buildKey(key)

	for _, c := range m.cache {
		if err := c.Del(ctx, cacheKey); err != nil {
			errVals = append(errVals, fmt.Errorf("[cache.MultiCache.Del] %s cache error: %w", c.GetName(), err))
		}
	}

	if len(errVals) > 0 {
		return errors.Join(errVals...)
	}

	return nil
}

// GetAndSet runs fn and stores its result in every layer.
func (m *multiCache[T]) GetAndSet(ctx context.Context, key string, expire time.Duration, fn func() (T, error)) (T, error) {
	var zero T

	value, err := fn()
	if err != nil {
		return zero, fmt.Errorf("[cache.MultiCache.GetAndSet] source function error: %w", err)
	}

	if err := m.Set(ctx, key, value, expire); err != nil {
		if errors.Is(err, ErrMarshal) {
			return zero, err
		}
		// The value was fetched; a failed cache write is not fatal.
	}

	return value, nil
}

// GetAndSingleSet collapses concurrent refills for the same key.
func (m *multiCache[T]) GetAndSingleSet(ctx context.Context, key string, expire time.Duration, fn func() (T, error)) (T, error) {
	cacheKey := m.buildKey(key)
	v, err, _ := m.sf.Do(cacheKey, func() (interface{}, error) {
		return m.GetAndSet(ctx, key, expire, fn)
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return v.(T), nil
}

func NewMultiCache[T any](conf *viper.Viper, cache []client.Cache) MultiCache[T] {
	if len(cache) == 0 {
		panic("at least one cache implementation is required")
	}

	// Lower priority value means it is tried first.
	sort.Slice(cache, func(i, j int) bool {
		return cache[i].GetPriority() < cache[j].GetPriority()
	})

	return &multiCache[T]{
		cache:  cache,
		prefix: conf.GetString("app.data.cache.prefix"),
		expire: time.Duration(conf.GetInt("app.data.cache.expire")) * time.Second,
	}
}
