package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

// RedisCache is the shared layer backed by Redis.
type RedisCache struct {
	rdb      *redis.Client
	name     string
	priority int
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, fmt.Errorf("[client.RedisCache.Get]: empty key not allowed")
	}

	val, err := r.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("[client.RedisCache.Get]: %w", err)
	}
	return val, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, value []byte, expire time.Duration) error {
	if key == "" {
		return fmt.Errorf("[client.RedisCache.Set]: empty key not allowed")
	}
	if value == nil {
		return fmt.Errorf("[client.RedisCache.Set]: nil value not allowed")
	}

	if expire <= 0 {
		expire = time.Hour
	}

	if err := r.rdb.Set(ctx, key, value, expire).Err(); err != nil {
		return fmt.Errorf("[client.RedisCache.Set]: %w", err)
	}
	return nil
}

func (r *RedisCache) Del(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("[client.RedisCache.Del]: empty key not allowed")
	}

	if err := r.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("[client.RedisCache.Del]: %w", err)
	}
	return nil
}

func (r *RedisCache) GetName() string {
	return r.name
}

func (r *RedisCache) GetPriority() int {
	return r.priority
}

func NewRedisCache(conf *viper.Viper) *RedisCache {
	options := &redis.Options{
		Addr:     conf.GetString("app.data.redis.addr"),
		Password: conf.GetString("app.data.redis.password"),
		DB:       conf.GetInt("app.data.redis.db"),

		PoolSize:     conf.GetInt("app.data.redis.poolSize"),
		MinIdleConns: conf.GetInt("app.data.redis.minIdleConns"),

		DialTimeout:  time.Duration(conf.GetInt("app.data.redis.dialTimeout")) * time.Second,
		ReadTimeout:  time.Duration(conf.GetInt("app.data.redis.readTimeout")) * time.Second,
		WriteTimeout: time.Duration(conf.GetInt("app.data.redis.writeTimeout")) * time.Second,
	}

	rdb := redis.NewClient(options)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		panic(fmt.Sprintf("redis error: %s", err.Error()))
	}

	return &RedisCache{
		rdb:      rdb,
		name:     "redis",
		priority: conf.GetInt("app.data.cache.redis.priority"),
	}
}

// NewCacheClients assembles the cache layer list from config. Redis is
// optional; a blank addr leaves only the local layer.
func NewCacheClients(conf *viper.Viper) []Cache {
	clients := []Cache{NewLocalCache(conf)}
	if conf.GetString("app.data.redis.addr") != "" {
		clients = append(clients, NewRedisCache(conf))
	}
	return clients
}
