package service

import (
	"context"
	"fmt"

	"restaurant-pos/internal/model"
	"restaurant-pos/internal/repository"

	"github.com/rs/zerolog"
)

const (
	defaultDishPageSize = 10
	maxDishPageSize     = 100
	maxDishPage         = 1_000_000
)

// dishService implements DishService.
type dishService struct {
	dishRepo repository.DishRepository
	logger   zerolog.Logger
}

// NewDishService creates a new dish service.
func NewDishService(dishRepo repository.DishRepository, logger zerolog.Logger) DishService {
	return &dishService{
		dishRepo: dishRepo,
		logger:   logger.With().Str("service", "dish").Logger(),
	}
}

// List retrieves one filtered, sorted page of dishes.
func (s *dishService) List(ctx context.Context, q model.DishListQuery) (*model.DishPage, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = defaultDishPageSize
	}
	if q.Limit > maxDishPageSize {
		q.Limit = maxDishPageSize
	}
	if q.SortBy == "" {
		q.SortBy = model.DishSortByCreatedAt
	}
	if q.SortOrder == "" {
		q.SortOrder = model.SortDesc
	}

	if err := validateDishQuery(q); err != nil {
		return nil, err
	}

	dishes, total, err := s.dishRepo.List(ctx, q)
	if err != nil {
		s.logger.Error().Err(err).
			Int("page", q.Page).
			Int("limit", q.Limit).
			Msg("failed to list dishes")
		return nil, fmt.Errorf("failed to list dishes: %w", err)
	}

	s.logger.Debug().
		Int("count", len(dishes)).
		Int("total", total).
		Msg("retrieved dishes")

	return &model.DishPage{
		Items:     dishes,
		TotalItem: total,
		Page:      q.Page,
		Limit:     q.Limit,
		TotalPage: (total + q.Limit - 1) / q.Limit,
	}, nil
}

// GetByID retrieves a single dish by ID.
func (s *dishService) GetByID(ctx context.Context, id int64) (*model.Dish, error) {
	if id <= 0 {
		return nil, model.ErrDishNotFound
	}

	dish, err := s.dishRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("dish_id", id).Msg("failed to get dish by ID")
		return nil, fmt.Errorf("failed to get dish: %w", err)
	}
	if dish == nil {
		s.logger.Debug().Int64("dish_id", id).Msg("dish not found")
		return nil, model.ErrDishNotFound
	}

	return dish, nil
}

func validateDishQuery(q model.DishListQuery) error {
	if q.Page > maxDishPage {
		return model.NewValidationError(model.ErrCodeInvalidFilter, "page must not exceed %d", maxDishPage)
	}
	switch q.SortBy {
	case model.DishSortByName, model.DishSortByPrice, model.DishSortByCreatedAt, model.DishSortByUpdatedAt:
	default:
		return model.NewValidationError(model.ErrCodeInvalidSort, "Unsupported sort key %q", q.SortBy)
	}
	if q.SortOrder != model.SortAsc && q.SortOrder != model.SortDesc {
		return model.NewValidationError(model.ErrCodeInvalidSort, "Unsupported sort order %q", q.SortOrder)
	}
	for _, status := range q.Statuses {
		if !status.Valid() {
			return model.NewValidationError(model.ErrCodeInvalidFilter, "Unknown dish status %q", status)
		}
	}
	if q.FromPrice != nil && q.FromPrice.IsNegative() {
		return model.NewValidationError(model.ErrCodeInvalidFilter, "fromPrice must not be negative")
	}
	if q.FromPrice != nil && q.ToPrice != nil && q.FromPrice.GreaterThan(*q.ToPrice) {
		return model.NewValidationError(model.ErrCodeInvalidFilter, "fromPrice must not exceed toPrice")
	}
	return nil
}
