package repository

import (
	"context"
	"fmt"

	"restaurant-pos/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// snapshotRepository implements the SnapshotRepository interface using PostgreSQL.
type snapshotRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewSnapshotRepository creates a new PostgreSQL-backed snapshot repository.
func NewSnapshotRepository(pool *pgxpool.Pool, logger zerolog.Logger) SnapshotRepository {
	return &snapshotRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "dish_snapshot").Logger(),
	}
}

// Create inserts a snapshot within the provided transaction. A missing source
// dish is reported as model.ErrDishNotFound.
func (r *snapshotRepository) Create(ctx context.Context, tx pgx.Tx, s *model.DishSnapshot) error {
	query := `
		INSERT INTO dish_snapshots (dish_id, name, price, description, image, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := tx.QueryRow(ctx, query, s.DishID, s.Name, s.Price, s.Description, s.Image, s.Status, s.CreatedAt).Scan(&s.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			r.logger.Warn().Err(err).Str("dish_name", s.Name).Msg("snapshot source dish does not exist")
			return model.ErrDishNotFound
		}
		r.logger.Error().Err(err).Str("dish_name", s.Name).Msg("failed to create dish snapshot")
		return fmt.Errorf("failed to create dish snapshot: %w", err)
	}

	r.logger.Debug().Int64("snapshot_id", s.ID).Msg("dish snapshot created successfully")

	return nil
}

// GetByID retrieves a snapshot by its ID.
func (r *snapshotRepository) GetByID(ctx context.Context, id int64) (*model.DishSnapshot, error) {
	query := `
		SELECT id, dish_id, name, price, description, image, status, created_at
		FROM dish_snapshots
		WHERE id = $1
	`

	var s model.DishSnapshot
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.DishID, &s.Name, &s.Price, &s.Description, &s.Image, &s.Status, &s.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("snapshot_id", id).Msg("failed to query dish snapshot")
		return nil, fmt.Errorf("failed to query dish snapshot: %w", err)
	}

	return &s, nil
}
