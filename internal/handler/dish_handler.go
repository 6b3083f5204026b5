package handler

import (
	"net/http"
	"strconv"
	"strings"

	"restaurant-pos/internal/model"
	"restaurant-pos/internal/service"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// DishHandler handles catalogue HTTP requests.
type DishHandler struct {
	service service.DishService
	logger  zerolog.Logger
}

// NewDishHandler creates a new dish handler.
func NewDishHandler(service service.DishService, logger zerolog.Logger) *DishHandler {
	return &DishHandler{
		service: service,
		logger:  logger.With().Str("handler", "dish").Logger(),
	}
}

// List handles GET /api/dishes requests.
//
// Query parameters: page, limit, sortBy, sortOrder, search, status (repeated
// or comma separated), fromPrice, toPrice.
func (h *DishHandler) List(w http.ResponseWriter, r *http.Request) {
	query, msg := parseDishQuery(r)
	if msg != "" {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidFilter, msg, h.logger)
		return
	}

	page, err := h.service.List(r.Context(), query)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// GetByID handles GET /api/dishes/{id} requests.
func (h *DishHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidID, "invalid dish ID", h.logger)
		return
	}

	dish, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, dish)
}

// parseDishQuery returns the query, or a message describing the first
// malformed parameter.
func parseDishQuery(r *http.Request) (model.DishListQuery, string) {
	values := r.URL.Query()
	q := model.DishListQuery{
		SortBy:    model.DishSortKey(values.Get("sortBy")),
		SortOrder: model.SortOrder(strings.ToLower(values.Get("sortOrder"))),
		Search:    strings.TrimSpace(values.Get("search")),
	}

	var err error
	if raw := values.Get("page"); raw != "" {
		if q.Page, err = strconv.Atoi(raw); err != nil || q.Page < 1 {
			return q, "page must be a positive integer"
		}
	}
	if raw := values.Get("limit"); raw != "" {
		if q.Limit, err = strconv.Atoi(raw); err != nil || q.Limit < 1 {
			return q, "limit must be a positive integer"
		}
	}

	for _, raw := range values["status"] {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				q.Statuses = append(q.Statuses, model.DishStatus(s))
			}
		}
	}

	if raw := values.Get("fromPrice"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return q, "fromPrice must be a number"
		}
		q.FromPrice = &d
	}
	if raw := values.Get("toPrice"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return q, "toPrice must be a number"
		}
		q.ToPrice = &d
	}

	return q, ""
}
