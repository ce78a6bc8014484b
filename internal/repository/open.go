package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/skyfly/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Open builds the store selected by cfg.Driver. The returned close func
// releases whatever connection the backend holds.
func Open(ctx context.Context, cfg config.StoreConfig) (BookingStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Driver {
	case "", config.StoreDriverFile:
		return NewFileBookingRepository(cfg.Path), noop, nil

	case config.StoreDriverRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		return NewRedisBookingRepository(client, cfg.Redis.Key), client.Close, nil

	case config.StoreDriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		repo := NewBookingRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return repo, func() error { pool.Close(); return nil }, nil

	case config.StoreDriverSQLite:
		repo, err := OpenSQLite(cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		if err := repo.EnsureSchema(ctx); err != nil {
			repo.Close()
			return nil, nil, err
		}
		return repo, repo.Close, nil
	}

	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}
