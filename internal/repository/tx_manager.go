package repository

import (
	"context"
	"errors"

	"nexusorder/pkg/retry"

	"gorm.io/gorm"
)

type contextKey string

const txKey contextKey = "gorm_tx"

// TransactionManager runs a unit of work inside a single database
// transaction. The transaction handle travels through the context so every
// repository call made within fn joins the same transaction.
type TransactionManager interface {
	RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error
}

type transactionManager struct {
	db *gorm.DB
}

func NewTransactionManager(db *gorm.DB) TransactionManager {
	return &transactionManager{db: db}
}

func (t *transactionManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txCtx := context.WithValue(ctx, txKey, tx)
		return fn(txCtx)
	})
}

// GetDB returns the transaction carried by ctx when one is active, otherwise
// the root handle.
func GetDB(ctx context.Context, rootDB *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return rootDB.WithContext(ctx)
}

// readRetry wraps the bounded read retry for repository lookups. A missing
// row is a data outcome, not a connectivity failure, so ErrRecordNotFound
// surfaces immediately instead of burning the backoff budget.
func readRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	return retry.Reads(ctx, func(ctx context.Context) error {
		err := fn(ctx)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return retry.Unrecoverable(err)
		}
		return err
	})
}
