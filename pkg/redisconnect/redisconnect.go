package redisconnect

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"stocktracker_api/config"
)

// NewRedisClient поднимает клиент к key-value хранилищу (barcode index,
// кэш сроков возврата) и проверяет соединение коротким Ping.
func NewRedisClient(cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}
