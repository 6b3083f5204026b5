package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

type socketRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewSocketRepository creates a new PostgreSQL-backed socket repository.
func NewSocketRepository(pool *pgxpool.Pool, logger zerolog.Logger) SocketRepository {
	return &socketRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "socket").Logger(),
	}
}

// GetSocketID returns the guest's socket ID or nil when none is registered.
func (r *socketRepository) GetSocketID(ctx context.Context, guestID int64) (*string, error) {
	var socketID string
	err := r.pool.QueryRow(ctx, `SELECT socket_id FROM sockets WHERE guest_id = $1`, guestID).Scan(&socketID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("guest_id", guestID).Msg("failed to query socket")
		return nil, fmt.Errorf("failed to query socket: %w", err)
	}

	return &socketID, nil
}
