package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderEventType names a lifecycle event pushed to connected clients.
type OrderEventType string

const (
	OrderEventCreated OrderEventType = "order.created"
	OrderEventUpdated OrderEventType = "order.updated"
	OrderEventPaid    OrderEventType = "order.paid"
)

// OrderEventLine is the part of an order carried in an event.
type OrderEventLine struct {
	ID          int64       `json:"id"`
	Status      OrderStatus `json:"status"`
	TableNumber *int        `json:"tableNumber"`
	Quantity    int         `json:"quantity"`
}

// OrderEvent is published after an order mutation commits.
type OrderEvent struct {
	ID         uuid.UUID        `json:"eventId"`
	Type       OrderEventType   `json:"type"`
	GuestID    int64            `json:"guestId"`
	SocketID   *string          `json:"socketId,omitempty"`
	Orders     []OrderEventLine `json:"orders"`
	OccurredAt time.Time        `json:"occurredAt"`
}

// NewOrderEvent builds an event for the given orders.
func NewOrderEvent(eventType OrderEventType, guestID int64, socketID *string, orders []Order, now time.Time) OrderEvent {
	lines := make([]OrderEventLine, len(orders))
	for i, o := range orders {
		lines[i] = OrderEventLine{
			ID:          o.ID,
			Status:      o.Status,
			TableNumber: o.TableNumber,
			Quantity:    o.Quantity,
		}
	}
	return OrderEvent{
		ID:         uuid.New(),
		Type:       eventType,
		GuestID:    guestID,
		SocketID:   socketID,
		Orders:     lines,
		OccurredAt: now,
	}
}
