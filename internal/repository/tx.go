package repository

import (
	"context"
	"fmt"

	"github.com/photogram/photogram/internal/apperr"
)

// InTx runs fn inside a database transaction. The transaction-bound
// Repository passed to fn exposes the same DAO API; the transaction stays
// open across any I/O fn performs and is settled only when fn returns.
// A nil return commits, any error rolls back, and fn's error is propagated
// to the caller unchanged. A panic rolls back and re-panics.
//
// The transaction owns one pooled connection exclusively until it settles;
// do not stash the transaction-bound Repository beyond fn's lifetime.
func (r *Repository) InTx(ctx context.Context, fn func(tx *Repository) error) error {
	if r.pool == nil {
		return apperr.Internal(fmt.Errorf("nested transactions are not supported"))
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return apperr.Internal(fmt.Errorf("begin transaction: %w", err))
	}

	txRepo := &Repository{
		users:  NewUserDAO(tx),
		photos: NewPhotoDAO(tx),
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(txRepo); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return apperr.Internal(fmt.Errorf("commit transaction: %w", err))
	}

	return nil
}
