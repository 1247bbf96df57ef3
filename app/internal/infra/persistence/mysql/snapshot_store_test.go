package mysql

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	domcart "example.com/susan-shop/app/internal/domain/cart"
)

func newMockStore(t *testing.T) (*SnapshotStore, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return NewSnapshotStore(db), mock
}

func TestGet(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery(`SELECT payload FROM cart_snapshots WHERE snapshot_key = \?`).
		WithArgs("cart").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow(`[]`))

	got, err := store.Get(context.Background(), "cart")

	require.NoError(t, err)
	require.Equal(t, `[]`, string(got))
}

func TestGet_NotFound(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery(`SELECT payload FROM cart_snapshots`).
		WithArgs("cart").
		WillReturnError(sql.ErrNoRows)

	_, err := store.Get(context.Background(), "cart")

	require.ErrorIs(t, err, domcart.ErrSnapshotNotFound)
}

func TestSet_Upserts(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec(`INSERT INTO cart_snapshots .* ON DUPLICATE KEY UPDATE`).
		WithArgs("cart", []byte(`[]`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Set(context.Background(), "cart", []byte(`[]`)))
}

func TestSet_Error(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec(`INSERT INTO cart_snapshots`).
		WillReturnError(errors.New("deadlock"))

	err := store.Set(context.Background(), "cart", []byte(`[]`))

	require.ErrorContains(t, err, "deadlock")
}

func TestDelete(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec(`DELETE FROM cart_snapshots WHERE snapshot_key = \?`).
		WithArgs("cart").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.Delete(context.Background(), "cart"))
}

func TestMigrate(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS cart_snapshots`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.Migrate(context.Background()))
}
