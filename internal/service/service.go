package service

import (
	"context"
	"time"

	"restaurant-pos/internal/model"

	"github.com/jackc/pgx/v5"
)

// DishService defines read operations on the catalogue.
type DishService interface {
	// List retrieves one filtered, sorted page of dishes.
	List(ctx context.Context, query model.DishListQuery) (*model.DishPage, error)

	// GetByID retrieves a single dish by ID.
	GetByID(ctx context.Context, id int64) (*model.Dish, error)
}

// SnapshotService freezes dishes into immutable snapshots.
type SnapshotService interface {
	// Freeze copies the dish's priced attributes into a new snapshot inside tx.
	Freeze(ctx context.Context, tx pgx.Tx, dish *model.Dish) (*model.DishSnapshot, error)
}

// OrderService defines operations on the order lifecycle.
type OrderService interface {
	// CreateOrders places one order per requested line for a seated guest.
	CreateOrders(ctx context.Context, req *model.CreateOrdersRequest) (*model.OrdersResult, error)

	// UpdateOrder changes status, quantity and optionally the dish of an order.
	UpdateOrder(ctx context.Context, id int64, req *model.UpdateOrderRequest) (*model.OrderResult, error)

	// GetOrders lists orders created within the query bounds, newest first.
	GetOrders(ctx context.Context, query model.OrderQuery) ([]model.Order, error)

	// GetOrderDetail retrieves a single order with its snapshot and table.
	GetOrderDetail(ctx context.Context, id int64) (*model.Order, error)
}

// PaymentService settles a guest's outstanding orders.
type PaymentService interface {
	// PayOrders marks every payable order of the guest as paid.
	PayOrders(ctx context.Context, req *model.PayOrdersRequest) (*model.OrdersResult, error)
}

// IndicatorService aggregates orders into dashboard indicators.
type IndicatorService interface {
	// Dashboard computes revenue and occupancy between from and to inclusive.
	Dashboard(ctx context.Context, from, to time.Time) (*model.DashboardIndicator, error)
}

// Notifier resolves a guest's live connection and announces order events.
// Neither method fails; errors are logged.
type Notifier interface {
	// Lookup returns the guest's socket ID, or nil when absent or on error.
	Lookup(ctx context.Context, guestID int64) *string

	// Announce publishes a lifecycle event for the given orders.
	Announce(ctx context.Context, eventType model.OrderEventType, guestID int64, socketID *string, orders []model.Order)
}
