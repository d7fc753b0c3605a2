package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/aussiebroadwan/gatekeeper/internal/auth/store"
)

var errNestedTx = errors.New("sqlite: nested transactions are not supported")

type txStore struct {
	tx *sql.Tx
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{tx: tx}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error { return nil } // outer DB stays open

// Ping is a no-op for transactions, the connection is already held.
func (t *txStore) Ping(ctx context.Context) error {
	return nil
}

// Tx cannot start a second transaction on the held connection.
func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	return nil, errNestedTx
}

// WithTx joins the outer transaction. Commit and rollback stay with the
// caller that opened it.
func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return fn(t)
}

func (t *txStore) Users() store.Users { return &usersRepo{q: t.tx} }

func (t *txStore) ApplyMigrations() error { return nil } // migrations run before any tx
