package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusPaid       OrderStatus = "Paid"
	OrderStatusRejected   OrderStatus = "Rejected"
)

// PayableStatuses are the statuses settled by a payment and counted as
// occupying a table.
var PayableStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusDelivered,
}

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusDelivered,
		OrderStatusPaid, OrderStatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no further transition is possible from s.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusPaid || s == OrderStatusRejected
}

// Outstanding reports whether an order in s is still open on its table.
func (s OrderStatus) Outstanding() bool {
	return s == OrderStatusPending || s == OrderStatusProcessing || s == OrderStatusDelivered
}

// Order is one line a guest ordered, bound to a frozen dish snapshot.
type Order struct {
	ID             int64         `json:"id" db:"id"`
	GuestID        int64         `json:"guestId" db:"guest_id"`
	DishSnapshotID int64         `json:"dishSnapshotId" db:"dish_snapshot_id"`
	TableNumber    *int          `json:"tableNumber" db:"table_number"`
	Quantity       int           `json:"quantity" db:"quantity"`
	OrderHandlerID *int64        `json:"orderHandlerId" db:"order_handler_id"`
	Status         OrderStatus   `json:"status" db:"status"`
	CreatedAt      time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time     `json:"updatedAt" db:"updated_at"`
	DishSnapshot   *DishSnapshot `json:"dishSnapshot,omitempty"`
	Table          *Table        `json:"table,omitempty"`
}

// Subtotal returns the snapshot price multiplied by the quantity.
func (o *Order) Subtotal() decimal.Decimal {
	if o.DishSnapshot == nil {
		return decimal.Zero
	}
	return o.DishSnapshot.Price.Mul(decimal.NewFromInt(int64(o.Quantity)))
}

// OrderLineRequest is a single dish in a create orders request.
type OrderLineRequest struct {
	DishID   int64 `json:"dishId"`
	Quantity int   `json:"quantity"`
}

// CreateOrdersRequest represents the request payload for placing orders.
type CreateOrdersRequest struct {
	GuestID        int64              `json:"guestId"`
	Orders         []OrderLineRequest `json:"orders"`
	OrderHandlerID *int64             `json:"-"`
}

// UpdateOrderRequest represents the request payload for changing an order.
type UpdateOrderRequest struct {
	Status         OrderStatus `json:"status"`
	DishID         int64       `json:"dishId"`
	Quantity       int         `json:"quantity"`
	OrderHandlerID *int64      `json:"-"`
}

// PayOrdersRequest represents the request payload for settling a guest.
type PayOrdersRequest struct {
	GuestID        int64  `json:"guestId"`
	OrderHandlerID *int64 `json:"-"`
}

// OrderQuery bounds an order listing. Nil bounds are open.
type OrderQuery struct {
	FromDate *time.Time
	ToDate   *time.Time
}

// OrdersResult is returned by operations touching several orders.
type OrdersResult struct {
	Orders   []Order `json:"orders"`
	SocketID *string `json:"socketId,omitempty"`
}

// OrderResult is returned by operations touching a single order.
type OrderResult struct {
	Order    *Order  `json:"order"`
	SocketID *string `json:"socketId,omitempty"`
}
