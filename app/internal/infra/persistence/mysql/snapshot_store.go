package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	domcart "example.com/susan-shop/app/internal/domain/cart"
)

const schema = `
CREATE TABLE IF NOT EXISTS cart_snapshots (
    snapshot_key VARCHAR(191) NOT NULL PRIMARY KEY,
    payload      LONGTEXT     NOT NULL,
    updated_at   TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
)`

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
        SELECT payload FROM cart_snapshots WHERE snapshot_key = ?
    `, key)

	var payload []byte
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domcart.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("mysql get snapshot: %w", err)
	}
	return payload, nil
}

func (r *SnapshotStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO cart_snapshots (snapshot_key, payload)
        VALUES (?, ?)
        ON DUPLICATE KEY UPDATE payload = VALUES(payload)
    `, key, value)
	if err != nil {
		return fmt.Errorf("mysql set snapshot: %w", err)
	}
	return nil
}

func (r *SnapshotStore) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_snapshots WHERE snapshot_key = ?`, key)
	if err != nil {
		return fmt.Errorf("mysql delete snapshot: %w", err)
	}
	return nil
}
