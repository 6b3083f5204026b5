package service

import (
	"context"
	"fmt"

	"restaurant-pos/internal/model"
	"restaurant-pos/internal/repository"

	"github.com/rs/zerolog"
)

// paymentService implements PaymentService.
type paymentService struct {
	orderRepo repository.OrderRepository
	notifier  Notifier
	settings  Settings
	logger    zerolog.Logger
}

// NewPaymentService creates a new payment service.
func NewPaymentService(orderRepo repository.OrderRepository, notifier Notifier, settings Settings, logger zerolog.Logger) PaymentService {
	return &paymentService{
		orderRepo: orderRepo,
		notifier:  notifier,
		settings:  settings,
		logger:    logger.With().Str("service", "payment").Logger(),
	}
}

// PayOrders marks the guest's Pending, Processing and Delivered orders as
// Paid in one transaction and returns them re-read after commit.
func (s *paymentService) PayOrders(ctx context.Context, req *model.PayOrdersRequest) (*model.OrdersResult, error) {
	if req == nil || req.GuestID <= 0 {
		return nil, model.NewValidationError(model.ErrCodeMissingField, "guestId is required")
	}

	payable, err := s.orderRepo.ListByGuest(ctx, req.GuestID, model.PayableStatuses)
	if err != nil {
		s.logger.Error().Err(err).Int64("guest_id", req.GuestID).Msg("failed to list payable orders")
		return nil, fmt.Errorf("failed to list payable orders: %w", err)
	}
	if len(payable) == 0 {
		return nil, model.ErrNothingToPay
	}

	ids := make([]int64, len(payable))
	for i, o := range payable {
		ids[i] = o.ID
	}

	if err := s.settle(ctx, req.GuestID, ids, req.OrderHandlerID); err != nil {
		s.logger.Warn().Err(err).Int64("guest_id", req.GuestID).Msg("failed to settle orders")
		return nil, err
	}

	reloaded, err := s.orderRepo.GetByIDs(ctx, ids)
	if err != nil {
		s.logger.Error().Err(err).Int64("guest_id", req.GuestID).Msg("failed to reload paid orders")
		return nil, fmt.Errorf("failed to reload paid orders: %w", err)
	}
	orders := paidOnly(reloaded)

	socketID := s.notifier.Lookup(ctx, req.GuestID)
	s.notifier.Announce(ctx, model.OrderEventPaid, req.GuestID, socketID, orders)

	s.logger.Info().
		Int64("guest_id", req.GuestID).
		Int("order_count", len(orders)).
		Msg("orders paid successfully")

	return &model.OrdersResult{Orders: orders, SocketID: socketID}, nil
}

func (s *paymentService) settle(ctx context.Context, guestID int64, ids []int64, handlerID *int64) (err error) {
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return model.NewTransactionError(err)
	}
	defer func() {
		if err != nil {
			rollback(ctx, tx, s.logger)
		}
	}()

	updated, err := s.orderRepo.MarkPaid(ctx, tx, ids, handlerID, s.settings.now())
	if err != nil {
		return txFailure(err)
	}
	if updated == 0 {
		return model.ErrNothingToPay
	}
	if updated != int64(len(ids)) {
		s.logger.Warn().
			Int64("guest_id", guestID).
			Int("eligible", len(ids)).
			Int64("updated", updated).
			Msg("some orders changed status before payment")
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Int64("guest_id", guestID).Msg("failed to commit transaction")
		return model.NewTransactionError(err)
	}

	return nil
}

// paidOnly drops orders a concurrent writer moved away from Paid.
func paidOnly(orders []model.Order) []model.Order {
	paid := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if o.Status == model.OrderStatusPaid {
			paid = append(paid, o)
		}
	}
	return paid
}
