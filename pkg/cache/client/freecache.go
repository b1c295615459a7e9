package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coocood/freecache"
	"github.com/spf13/viper"
)

// LocalCache is the in-process layer backed by freecache.
type LocalCache struct {
	cache    *freecache.Cache
	name     string
	priority int
}

func (l *LocalCache) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, fmt.Errorf("[client.LocalCache.Get]: empty key not allowed")
	}

	bytes, err := l.cache.Get([]byte(key))
	if err != nil {
		if errors.Is(err, freecache.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("[client.LocalCache.Get]: %w", err)
	}
	return bytes, nil
}

func (l *LocalCache) Set(ctx context.Context, key string, value []byte, expire time.Duration) error {
	if key == "" {
		return fmt.Errorf("[client.LocalCache.Set]: empty key not allowed")
	}
	if value == nil {
		return fmt.Errorf("[client.LocalCache.Set]: nil value not allowed")
	}

	// freecache limits key length to 64KiB.
	if len(key) > 65535 {
		return fmt.Errorf("[client.LocalCache.Set]: key too long (max 65535 bytes)")
	}

	expireSeconds := int(expire.Seconds())
	if expireSeconds <= 0 {
		expireSeconds = 60 // never cache forever
	}

	if err := l.cache.Set([]byte(key), value, expireSeconds); err != nil {
		return fmt.Errorf("[client.LocalCache.Set]: %w", err)
	}
	return nil
}

func (l *LocalCache) Del(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("[client.LocalCache.Del]: empty key not allowed")
	}

	// Del reports false for a missing key, which is not an error here.
	l.cache.Del([]byte(key))
	return nil
}

func (l *LocalCache) GetPriority() int {
	return l.priority
}

func (l *LocalCache) GetName() string {
	return l.name
}

func NewLocalCache(conf *viper.Viper) *LocalCache {
	size := conf.GetInt("app.data.cache.local.size")
	if size <= 0 {
		size = 64 // MB
	}

	return &LocalCache{
		cache:    freecache.NewCache(size * 1024 * 1024),
		name:     "local",
		priority: conf.GetInt("app.data.cache.local.priority"),
	}
}
