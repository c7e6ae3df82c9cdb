package main

import (
	"github.com/redis/go-redis/v9"

	"github.com/hagstofa/toknun/config"
)

func newRedisClient(cfg config.CacheConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})
}
