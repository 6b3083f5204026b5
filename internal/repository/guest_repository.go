package repository

import (
	"context"
	"fmt"
	"time"

	"restaurant-pos/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// guestRepository implements GuestRepository and TableRepository.
type guestRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

func newGuestRepository(pool *pgxpool.Pool, logger zerolog.Logger) *guestRepository {
	return &guestRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "guest").Logger(),
	}
}

// NewGuestRepository creates a new PostgreSQL-backed guest repository.
func NewGuestRepository(pool *pgxpool.Pool, logger zerolog.Logger) GuestRepository {
	return newGuestRepository(pool, logger)
}

// NewTableRepository creates a new PostgreSQL-backed table repository.
func NewTableRepository(pool *pgxpool.Pool, logger zerolog.Logger) TableRepository {
	return newGuestRepository(pool, logger)
}

// GetByID retrieves a guest by its ID.
func (r *guestRepository) GetByID(ctx context.Context, id int64) (*model.Guest, error) {
	query := `
		SELECT id, name, table_number, created_at, updated_at
		FROM guests
		WHERE id = $1
	`

	var g model.Guest
	err := r.pool.QueryRow(ctx, query, id).Scan(&g.ID, &g.Name, &g.TableNumber, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("guest_id", id).Msg("guest not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("guest_id", id).Msg("failed to query guest")
		return nil, fmt.Errorf("failed to query guest: %w", err)
	}

	return &g, nil
}

// ListWithPaidOrders retrieves guests created in [from, to] having at least
// one paid order.
func (r *guestRepository) ListWithPaidOrders(ctx context.Context, from, to time.Time) ([]model.Guest, error) {
	query := `
		SELECT g.id, g.name, g.table_number, g.created_at, g.updated_at
		FROM guests g
		WHERE g.created_at >= $1 AND g.created_at <= $2
		  AND EXISTS (
			SELECT 1 FROM orders o WHERE o.guest_id = g.id AND o.status = $3
		  )
		ORDER BY g.id
	`

	rows, err := r.pool.Query(ctx, query, from, to, model.OrderStatusPaid)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query guests with paid orders")
		return nil, fmt.Errorf("failed to query guests: %w", err)
	}
	defer rows.Close()

	guests := []model.Guest{}
	for rows.Next() {
		var g model.Guest
		if err := rows.Scan(&g.ID, &g.Name, &g.TableNumber, &g.CreatedAt, &g.UpdatedAt); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan guest row")
			return nil, fmt.Errorf("failed to scan guest: %w", err)
		}
		guests = append(guests, g)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating guest rows")
		return nil, fmt.Errorf("error iterating guests: %w", err)
	}

	return guests, nil
}

// GetByNumber retrieves a table by its number.
func (r *guestRepository) GetByNumber(ctx context.Context, number int) (*model.Table, error) {
	query := `
		SELECT number, capacity, status, created_at, updated_at
		FROM dining_tables
		WHERE number = $1
	`

	var t model.Table
	err := r.pool.QueryRow(ctx, query, number).Scan(&t.Number, &t.Capacity, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int("table_number", number).Msg("table not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int("table_number", number).Msg("failed to query table")
		return nil, fmt.Errorf("failed to query table: %w", err)
	}

	return &t, nil
}
