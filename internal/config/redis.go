package config

import (
	"context"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func NewRedisClient(ctx context.Context, cfg *Config, logger *zap.Logger) (*redis.Client, error) {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	ping := func() error {
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn("redis not ready, retrying", zap.Error(err))
			return err
		}
		return nil
	}

	if err := backoff.Retry(ping, startupBackoff(ctx)); err != nil {
		client.Close()
		return nil, err
	}

	return client, nil
}
