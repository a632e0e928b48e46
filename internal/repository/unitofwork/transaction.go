package unitofwork

import (
	"context"
	"errors"
	"fmt"
)

// WithTransaction runs fn inside uow's transaction. The transaction is
// committed when fn returns nil and rolled back on an error or a panic.
// A panic is re-raised after the rollback.
func WithTransaction(ctx context.Context, uow UnitOfWork, fn func(uow UnitOfWork) error) (err error) {
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = uow.Rollback()
			panic(r)
		}
	}()

	if err := fn(uow); err != nil {
		if rbErr := uow.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}
	return uow.Commit()
}
