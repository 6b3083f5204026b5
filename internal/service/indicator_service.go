package service

import (
	"context"
	"fmt"
	"time"

	"restaurant-pos/internal/model"
	"restaurant-pos/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// RevenueDateLayout formats revenue bucket keys as dd/MM/yyyy.
const RevenueDateLayout = "02/01/2006"

// indicatorService implements IndicatorService.
type indicatorService struct {
	orderRepo repository.OrderRepository
	guestRepo repository.GuestRepository
	dishRepo  repository.DishRepository
	settings  Settings
	logger    zerolog.Logger
}

// NewIndicatorService creates a new indicator service.
func NewIndicatorService(
	orderRepo repository.OrderRepository,
	guestRepo repository.GuestRepository,
	dishRepo repository.DishRepository,
	settings Settings,
	logger zerolog.Logger,
) IndicatorService {
	return &indicatorService{
		orderRepo: orderRepo,
		guestRepo: guestRepo,
		dishRepo:  dishRepo,
		settings:  settings,
		logger:    logger.With().Str("service", "indicator").Logger(),
	}
}

// Dashboard loads orders, paying guests and the catalogue concurrently and
// folds them into one indicator.
func (s *indicatorService) Dashboard(ctx context.Context, from, to time.Time) (*model.DashboardIndicator, error) {
	if from.After(to) {
		return nil, model.ErrInvalidDateRange
	}
	if maxDays := s.settings.maxDashboardDays(); rangeExceedsDays(from, to, s.settings.location(), maxDays) {
		s.logger.Debug().Time("from", from).Time("to", to).Int("max_days", maxDays).Msg("dashboard range too wide")
		return nil, model.NewValidationError(model.ErrCodeInvalidDateRange,
			"date range must not span more than %d days", maxDays)
	}

	var (
		orders []model.Order
		guests []model.Guest
		dishes []model.Dish
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orders, err = s.orderRepo.List(gctx, model.OrderQuery{FromDate: &from, ToDate: &to})
		if err != nil {
			return fmt.Errorf("failed to list orders: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		guests, err = s.guestRepo.ListWithPaidOrders(gctx, from, to)
		if err != nil {
			return fmt.Errorf("failed to list guests: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		dishes, err = s.dishRepo.GetAll(gctx)
		if err != nil {
			return fmt.Errorf("failed to list dishes: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Time("from", from).Time("to", to).Msg("failed to load dashboard data")
		return nil, err
	}

	indicator := BuildDashboard(orders, guests, dishes, from, to, s.settings)

	s.logger.Debug().
		Int("order_count", indicator.OrderCount).
		Int("guest_count", indicator.GuestCount).
		Int("serving_table_count", indicator.ServingTableCount).
		Str("revenue", indicator.Revenue.String()).
		Msg("dashboard computed")

	return indicator, nil
}

// BuildDashboard folds orders into revenue, per-dish and occupancy counters.
// Revenue only counts Paid orders; a table is serving while it holds a
// Pending, Processing or Delivered order. Buckets cover every calendar day
// from from to to in the configured zone.
func BuildDashboard(orders []model.Order, guests []model.Guest, dishes []model.Dish, from, to time.Time, settings Settings) *model.DashboardIndicator {
	loc := settings.location()

	dishIndicators := make([]model.DishIndicator, len(dishes))
	dishIndex := make(map[int64]int, len(dishes))
	for i, d := range dishes {
		dishIndicators[i] = model.DishIndicator{Dish: d}
		dishIndex[d.ID] = i
	}

	buckets := revenueBuckets(from, to, loc)
	bucketIndex := make(map[string]int, len(buckets))
	for i, b := range buckets {
		bucketIndex[b.Date] = i
	}

	revenue := decimal.Zero
	servingTables := make(map[int]struct{})

	for i := range orders {
		o := &orders[i]
		switch {
		case o.Status == model.OrderStatusPaid:
			amount := o.Subtotal()
			revenue = revenue.Add(amount)
			if idx, ok := bucketIndex[o.CreatedAt.In(loc).Format(RevenueDateLayout)]; ok {
				buckets[idx].Revenue = buckets[idx].Revenue.Add(amount)
			}
			if o.DishSnapshot != nil && o.DishSnapshot.DishID != nil {
				if idx, ok := dishIndex[*o.DishSnapshot.DishID]; ok {
					dishIndicators[idx].SuccessOrders++
				}
			}
		case o.Status.Outstanding() && o.TableNumber != nil:
			servingTables[*o.TableNumber] = struct{}{}
		}
	}

	return &model.DashboardIndicator{
		Revenue:           revenue,
		Currency:          settings.Currency,
		GuestCount:        len(guests),
		OrderCount:        len(orders),
		ServingTableCount: len(servingTables),
		DishIndicator:     dishIndicators,
		RevenueByDate:     buckets,
	}
}

// revenueBuckets returns one zero bucket per calendar day in loc from from to
// to inclusive.
func revenueBuckets(from, to time.Time, loc *time.Location) []model.RevenueByDate {
	start := startOfDay(from.In(loc))
	end := startOfDay(to.In(loc))

	var buckets []model.RevenueByDate
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		buckets = append(buckets, model.RevenueByDate{
			Date:    day.Format(RevenueDateLayout),
			Revenue: decimal.Zero,
		})
	}
	return buckets
}

// rangeExceedsDays reports whether from..to touches more than maxDays
// calendar days in loc.
func rangeExceedsDays(from, to time.Time, loc *time.Location, maxDays int) bool {
	last := startOfDay(from.In(loc)).AddDate(0, 0, maxDays-1)
	return startOfDay(to.In(loc)).After(last)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
