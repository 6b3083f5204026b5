package service

import (
	"context"
	"errors"

	"restaurant-pos/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// rollback aborts tx. It runs even when ctx is already cancelled.
func rollback(ctx context.Context, tx pgx.Tx, logger zerolog.Logger) {
	if err := tx.Rollback(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.Error().Err(err).Msg("failed to rollback transaction")
	}
}

// txFailure reports err as a transaction error unless it already is a
// domain error.
func txFailure(err error) error {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	return model.NewTransactionError(err)
}
