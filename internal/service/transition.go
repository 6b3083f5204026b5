package service

import "restaurant-pos/internal/model"

// orderTransitions lists, for each target status, the statuses an order may
// move from.
var orderTransitions = map[model.OrderStatus][]model.OrderStatus{
	model.OrderStatusPending:    {},
	model.OrderStatusProcessing: {model.OrderStatusPending},
	model.OrderStatusDelivered:  {model.OrderStatusProcessing},
	model.OrderStatusPaid:       {model.OrderStatusPending, model.OrderStatusProcessing, model.OrderStatusDelivered},
	model.OrderStatusRejected:   {model.OrderStatusPending, model.OrderStatusProcessing, model.OrderStatusDelivered},
}

// ValidateTransition reports whether an order in status from may be written
// with status to. Rewriting the same status is allowed until the order is
// paid or rejected.
func ValidateTransition(from, to model.OrderStatus) error {
	if !to.Valid() {
		return model.ErrInvalidStatus
	}
	if from.Terminal() {
		return model.ErrOrderFinalized
	}
	if from == to {
		return nil
	}
	for _, allowed := range orderTransitions[to] {
		if allowed == from {
			return nil
		}
	}
	return model.NewValidationError(model.ErrCodeInvalidTransition,
		"Order cannot move from %s to %s", from, to)
}
