package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	goredis "github.com/redis/go-redis/v9"

	"example.com/susan-shop/app/internal/config"
	domcart "example.com/susan-shop/app/internal/domain/cart"
	"example.com/susan-shop/app/internal/infra/persistence/file"
	"example.com/susan-shop/app/internal/infra/persistence/memory"
	"example.com/susan-shop/app/internal/infra/persistence/mysql"
	"example.com/susan-shop/app/internal/infra/persistence/postgres"
	cartredis "example.com/susan-shop/app/internal/infra/persistence/redis"
)

const redisKeyPrefix = "susan-shop:"

// openStorage builds the cart snapshot backend named by cfg.CartBackend.
// The returned func releases its connections.
func openStorage(ctx context.Context, cfg config.Config) (domcart.Storage, func(), error) {
	noop := func() {}

	switch cfg.CartBackend {
	case "memory":
		return memory.NewSnapshotStore(), noop, nil

	case "file":
		store, err := file.NewSnapshotStore(cfg.CartFileDir)
		if err != nil {
			return nil, noop, err
		}
		return store, noop, nil

	case "redis":
		client := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
		if err := pingWithTimeout(ctx, func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}); err != nil {
			_ = client.Close()
			return nil, noop, fmt.Errorf("redis ping: %w", err)
		}
		return cartredis.NewSnapshotStore(client, redisKeyPrefix, cfg.SessionTTL), func() { _ = client.Close() }, nil

	case "mysql":
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			return nil, noop, fmt.Errorf("mysql open: %w", err)
		}
		store := mysql.NewSnapshotStore(db)
		if err := prepareSQL(ctx, db, store.Migrate); err != nil {
			_ = db.Close()
			return nil, noop, fmt.Errorf("mysql: %w", err)
		}
		return store, func() { _ = db.Close() }, nil

	case "postgres":
		db, err := postgres.Open(cfg.PGDSN)
		if err != nil {
			return nil, noop, fmt.Errorf("pg open: %w", err)
		}
		store := postgres.NewSnapshotStore(db)
		if err := prepareSQL(ctx, db, store.Migrate); err != nil {
			_ = db.Close()
			return nil, noop, fmt.Errorf("pg: %w", err)
		}
		return store, func() { _ = db.Close() }, nil

	default:
		return nil, noop, fmt.Errorf("unknown cart backend %q", cfg.CartBackend)
	}
}

func prepareSQL(ctx context.Context, db *sql.DB, migrate func(context.Context) error) error {
	if err := pingWithTimeout(ctx, db.PingContext); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return migrate(ctx)
}

func pingWithTimeout(ctx context.Context, ping func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return ping(ctx)
}
