package service

import (
	"context"
	"fmt"

	"restaurant-pos/internal/model"
	"restaurant-pos/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo repository.OrderRepository
	dishRepo  repository.DishRepository
	guestRepo repository.GuestRepository
	tableRepo repository.TableRepository
	snapshots SnapshotService
	notifier  Notifier
	settings  Settings
	logger    zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	dishRepo repository.DishRepository,
	guestRepo repository.GuestRepository,
	tableRepo repository.TableRepository,
	snapshots SnapshotService,
	notifier Notifier,
	settings Settings,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		dishRepo:  dishRepo,
		guestRepo: guestRepo,
		tableRepo: tableRepo,
		snapshots: snapshots,
		notifier:  notifier,
		settings:  settings,
		logger:    logger.With().Str("service", "order").Logger(),
	}
}

// CreateOrders places one Pending order per line, all or nothing.
func (s *orderService) CreateOrders(ctx context.Context, req *model.CreateOrdersRequest) (*model.OrdersResult, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, err
	}

	guest, table, err := s.seatedGuest(ctx, req.GuestID)
	if err != nil {
		return nil, err
	}

	orders, err := s.insertOrders(ctx, guest, table, req)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Int64("guest_id", guest.ID).
			Int("line_count", len(req.Orders)).
			Msg("failed to create orders")
		return nil, err
	}

	socketID := s.notifier.Lookup(ctx, guest.ID)
	s.notifier.Announce(ctx, model.OrderEventCreated, guest.ID, socketID, orders)

	s.logger.Info().
		Int64("guest_id", guest.ID).
		Int("table_number", table.Number).
		Int("order_count", len(orders)).
		Msg("orders created successfully")

	return &model.OrdersResult{Orders: orders, SocketID: socketID}, nil
}

// seatedGuest loads the guest and the visible table they sit at.
func (s *orderService) seatedGuest(ctx context.Context, guestID int64) (*model.Guest, *model.Table, error) {
	guest, err := s.guestRepo.GetByID(ctx, guestID)
	if err != nil {
		s.logger.Error().Err(err).Int64("guest_id", guestID).Msg("failed to get guest")
		return nil, nil, fmt.Errorf("failed to get guest: %w", err)
	}
	if guest == nil {
		return nil, nil, model.ErrGuestNotFound
	}
	if guest.TableNumber == nil {
		return nil, nil, model.ErrNoTable
	}

	table, err := s.tableRepo.GetByNumber(ctx, *guest.TableNumber)
	if err != nil {
		s.logger.Error().Err(err).Int("table_number", *guest.TableNumber).Msg("failed to get table")
		return nil, nil, fmt.Errorf("failed to get table: %w", err)
	}
	if table == nil {
		return nil, nil, model.ErrTableNotFound
	}
	if table.Status == model.TableStatusHidden {
		return nil, nil, model.ErrTableHidden
	}

	return guest, table, nil
}

func (s *orderService) insertOrders(ctx context.Context, guest *model.Guest, table *model.Table, req *model.CreateOrdersRequest) (orders []model.Order, err error) {
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, model.NewTransactionError(err)
	}
	defer func() {
		if err != nil {
			rollback(ctx, tx, s.logger)
		}
	}()

	now := s.settings.now()
	orders = make([]model.Order, 0, len(req.Orders))
	for _, line := range req.Orders {
		var dish *model.Dish
		dish, err = s.orderableDish(ctx, tx, line.DishID)
		if err != nil {
			return nil, txFailure(err)
		}

		var snapshot *model.DishSnapshot
		snapshot, err = s.snapshots.Freeze(ctx, tx, dish)
		if err != nil {
			return nil, txFailure(err)
		}

		order := model.Order{
			GuestID:        guest.ID,
			DishSnapshotID: snapshot.ID,
			TableNumber:    guest.TableNumber,
			Quantity:       line.Quantity,
			OrderHandlerID: req.OrderHandlerID,
			Status:         model.OrderStatusPending,
			CreatedAt:      now,
			UpdatedAt:      now,
			DishSnapshot:   snapshot,
			Table:          table,
		}
		if err = s.orderRepo.Create(ctx, tx, &order); err != nil {
			return nil, txFailure(err)
		}
		orders = append(orders, order)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Int64("guest_id", guest.ID).Msg("failed to commit transaction")
		return nil, model.NewTransactionError(err)
	}

	return orders, nil
}

// orderableDish loads a dish inside tx and rejects it unless it is Available.
func (s *orderService) orderableDish(ctx context.Context, tx pgx.Tx, dishID int64) (*model.Dish, error) {
	dish, err := s.dishRepo.GetByIDTx(ctx, tx, dishID)
	if err != nil {
		return nil, err
	}
	if dish == nil {
		return nil, model.NewDomainError(model.KindNotFound, model.ErrCodeDishNotFound,
			fmt.Sprintf("Dish %d not found", dishID))
	}
	if !dish.Status.Orderable() {
		return nil, model.DishNotOrderableError(dish)
	}
	return dish, nil
}

// UpdateOrder writes status, quantity and handler, rebinding the order to a
// fresh snapshot when the dish changes.
func (s *orderService) UpdateOrder(ctx context.Context, id int64, req *model.UpdateOrderRequest) (*model.OrderResult, error) {
	if err := validateUpdateRequest(req); err != nil {
		return nil, err
	}

	order, err := s.applyUpdate(ctx, id, req)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Int64("order_id", id).
			Str("status", string(req.Status)).
			Msg("failed to update order")
		return nil, err
	}

	socketID := s.notifier.Lookup(ctx, order.GuestID)
	s.notifier.Announce(ctx, model.OrderEventUpdated, order.GuestID, socketID, []model.Order{*order})

	s.logger.Info().
		Int64("order_id", order.ID).
		Str("status", string(order.Status)).
		Int64("dish_snapshot_id", order.DishSnapshotID).
		Msg("order updated successfully")

	return &model.OrderResult{Order: order, SocketID: socketID}, nil
}

func (s *orderService) applyUpdate(ctx context.Context, id int64, req *model.UpdateOrderRequest) (order *model.Order, err error) {
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, model.NewTransactionError(err)
	}
	defer func() {
		if err != nil {
			rollback(ctx, tx, s.logger)
		}
	}()

	order, err = s.orderRepo.GetByIDTx(ctx, tx, id)
	if err != nil {
		return nil, txFailure(err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	if err = ValidateTransition(order.Status, req.Status); err != nil {
		return nil, err
	}

	if !boundToDish(order, req.DishID) {
		var dish *model.Dish
		dish, err = s.orderableDish(ctx, tx, req.DishID)
		if err != nil {
			return nil, txFailure(err)
		}

		var snapshot *model.DishSnapshot
		snapshot, err = s.snapshots.Freeze(ctx, tx, dish)
		if err != nil {
			return nil, txFailure(err)
		}
		order.DishSnapshotID = snapshot.ID
		order.DishSnapshot = snapshot
	}

	order.Status = req.Status
	order.Quantity = req.Quantity
	if req.OrderHandlerID != nil {
		order.OrderHandlerID = req.OrderHandlerID
	}
	order.UpdatedAt = s.settings.now()

	if err = s.orderRepo.Update(ctx, tx, order); err != nil {
		return nil, txFailure(err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Int64("order_id", id).Msg("failed to commit transaction")
		return nil, model.NewTransactionError(err)
	}

	return order, nil
}

// boundToDish reports whether the order's snapshot was taken from dishID.
// A snapshot whose dish was deleted is bound to nothing.
func boundToDish(order *model.Order, dishID int64) bool {
	return order.DishSnapshot != nil &&
		order.DishSnapshot.DishID != nil &&
		*order.DishSnapshot.DishID == dishID
}

// GetOrders lists orders created within the query bounds, newest first.
func (s *orderService) GetOrders(ctx context.Context, query model.OrderQuery) ([]model.Order, error) {
	if query.FromDate != nil && query.ToDate != nil && query.FromDate.After(*query.ToDate) {
		return nil, model.ErrInvalidDateRange
	}

	orders, err := s.orderRepo.List(ctx, query)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	s.logger.Debug().Int("count", len(orders)).Msg("retrieved orders")

	return orders, nil
}

// GetOrderDetail retrieves a single order with its snapshot and table.
func (s *orderService) GetOrderDetail(ctx context.Context, id int64) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("order_id", id).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}
	return order, nil
}

// validateCreateRequest validates the create orders request.
func (s *orderService) validateCreateRequest(req *model.CreateOrdersRequest) error {
	if req == nil || req.GuestID <= 0 {
		return model.NewValidationError(model.ErrCodeMissingField, "guestId is required")
	}
	if len(req.Orders) == 0 {
		return model.NewValidationError(model.ErrCodeMissingField, "orders must contain at least one line")
	}

	for i, line := range req.Orders {
		if line.DishID <= 0 {
			return model.NewValidationError(model.ErrCodeMissingField, "line %d: dishId is required", i)
		}
		if line.Quantity <= 0 {
			s.logger.Warn().
				Int("line_index", i).
				Int64("dish_id", line.DishID).
				Int("quantity", line.Quantity).
				Msg("invalid quantity")
			return model.ErrInvalidQuantity
		}
	}

	return nil
}

func validateUpdateRequest(req *model.UpdateOrderRequest) error {
	if req == nil {
		return model.NewValidationError(model.ErrCodeMissingField, "request body is required")
	}
	if !req.Status.Valid() {
		return model.ErrInvalidStatus
	}
	if req.DishID <= 0 {
		return model.NewValidationError(model.ErrCodeMissingField, "dishId is required")
	}
	if req.Quantity <= 0 {
		return model.ErrInvalidQuantity
	}
	return nil
}
