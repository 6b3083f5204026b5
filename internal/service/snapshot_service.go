package service

import (
	"context"

	"restaurant-pos/internal/model"
	"restaurant-pos/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

type snapshotService struct {
	snapshotRepo repository.SnapshotRepository
	settings     Settings
	logger       zerolog.Logger
}

// NewSnapshotService creates a new snapshot service.
func NewSnapshotService(snapshotRepo repository.SnapshotRepository, settings Settings, logger zerolog.Logger) SnapshotService {
	return &snapshotService{
		snapshotRepo: snapshotRepo,
		settings:     settings,
		logger:       logger.With().Str("service", "snapshot").Logger(),
	}
}

// Freeze copies the dish into a new snapshot inside tx. The dish itself is
// never modified.
func (s *snapshotService) Freeze(ctx context.Context, tx pgx.Tx, dish *model.Dish) (*model.DishSnapshot, error) {
	dishID := dish.ID
	snapshot := &model.DishSnapshot{
		DishID:      &dishID,
		Name:        dish.Name,
		Price:       dish.Price.Round(s.settings.PriceScale),
		Description: dish.Description,
		Image:       dish.Image,
		Status:      dish.Status,
		CreatedAt:   s.settings.now(),
	}

	if err := s.snapshotRepo.Create(ctx, tx, snapshot); err != nil {
		s.logger.Warn().Err(err).Int64("dish_id", dish.ID).Msg("failed to freeze dish")
		return nil, err
	}

	s.logger.Debug().
		Int64("dish_id", dish.ID).
		Int64("snapshot_id", snapshot.ID).
		Msg("dish frozen")

	return snapshot, nil
}
