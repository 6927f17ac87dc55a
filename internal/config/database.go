package config

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func NewPostgresDB(ctx context.Context, cfg *Config, logger *zap.Logger) (*sqlx.DB, error) {
	var db *sqlx.DB

	connect := func() error {
		conn, err := sqlx.ConnectContext(ctx, "postgres", cfg.DatabaseURL)
		if err != nil {
			logger.Warn("postgres not ready, retrying", zap.Error(err))
			return err
		}
		db = conn
		return nil
	}

	if err := backoff.Retry(connect, startupBackoff(ctx)); err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

func startupBackoff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 5 * time.Second
	b.MaxElapsedTime = 30 * time.Second
	return backoff.WithContext(b, ctx)
}
