package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"

	domcart "example.com/susan-shop/app/internal/domain/cart"
)

const schema = `
CREATE TABLE IF NOT EXISTS cart_snapshots (
    snapshot_key TEXT        PRIMARY KEY,
    payload      JSONB       NOT NULL,
    updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Open connects through the pgx database/sql driver.
func Open(dsn string) (*sql.DB, error) {
	return sql.Open("pgx", dsn)
}

type SnapshotStore struct {
	db *sql.DB
}

func NewSnapshotStore(db *sql.DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

func (r *SnapshotStore) Migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, schema)
	return err
}

func (r *SnapshotStore) Get(ctx context.Context, key string) ([]byte, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT payload FROM cart_snapshots WHERE snapshot_key = $1
    `, key)

	var payload []byte
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domcart.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("postgres get snapshot: %w", err)
	}
	return payload, nil
}

func (r *SnapshotStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO cart_snapshots (snapshot_key, payload, updated_at)
        VALUES ($1, $2, now())
        ON CONFLICT (snapshot_key) DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()
    `, key, string(value))
	if err != nil {
		return fmt.Errorf("postgres set snapshot: %w", err)
	}
	return nil
}

func (r *SnapshotStore) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_snapshots WHERE snapshot_key = $1`, key)
	if err != nil {
		return fmt.Errorf("postgres delete snapshot: %w", err)
	}
	return nil
}
