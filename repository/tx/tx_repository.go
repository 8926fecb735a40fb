package tx

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// TxRepository hands out database transactions for multi-statement ledger
// mutations. Every stock movement that touches more than one row goes
// through BeginTx so reads with row locks and the writes they gate share
// one transaction.
type TxRepository interface {
	BeginTx(ctx context.Context) (*sqlx.Tx, error)
	CommitTx(tx *sqlx.Tx) error
	RollbackTx(tx *sqlx.Tx) error
}

type repository struct {
	db *sqlx.DB
}

func NewTxRepository(db *sqlx.DB) TxRepository {
	return &repository{db: db}
}

// BeginTx opens a read-write transaction at the connection's default
// isolation level. FOR UPDATE locks inside it serialize ledger writers.
func (r *repository) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	return r.db.BeginTxx(ctx, &sql.TxOptions{})
}

func (r *repository) CommitTx(tx *sqlx.Tx) error {
	return tx.Commit()
}

func (r *repository) RollbackTx(tx *sqlx.Tx) error {
	return tx.Rollback()
}
