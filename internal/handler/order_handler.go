package handler

import (
	"encoding/json"
	"net/http"

	"restaurant-pos/internal/middleware"
	"restaurant-pos/internal/model"
	"restaurant-pos/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	orders   service.OrderService
	payments service.PaymentService
	logger   zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orders service.OrderService, payments service.PaymentService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		orders:   orders,
		payments: payments,
		logger:   logger.With().Str("handler", "order").Logger(),
	}
}

// Create handles POST /api/orders requests.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateOrdersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}
	req.OrderHandlerID = middleware.StaffIDFromContext(r.Context())

	result, err := h.orders.CreateOrders(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

// List handles GET /api/orders requests with optional fromDate and toDate.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	from, err := queryTime(r, "fromDate")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidFilter, "fromDate must be an RFC3339 timestamp", h.logger)
		return
	}
	to, err := queryTime(r, "toDate")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidFilter, "toDate must be an RFC3339 timestamp", h.logger)
		return
	}

	orders, err := h.orders.GetOrders(r.Context(), model.OrderQuery{FromDate: from, ToDate: to})
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// GetByID handles GET /api/orders/{id} requests.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidID, "invalid order ID", h.logger)
		return
	}

	order, err := h.orders.GetOrderDetail(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// Update handles PUT /api/orders/{id} requests.
func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidID, "invalid order ID", h.logger)
		return
	}

	var req model.UpdateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}
	req.OrderHandlerID = middleware.StaffIDFromContext(r.Context())

	result, err := h.orders.UpdateOrder(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Pay handles POST /api/orders/pay requests.
func (h *OrderHandler) Pay(w http.ResponseWriter, r *http.Request) {
	var req model.PayOrdersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}
	req.OrderHandlerID = middleware.StaffIDFromContext(r.Context())

	result, err := h.payments.PayOrders(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
