package handler

import (
	"net/http"

	"restaurant-pos/internal/model"
	"restaurant-pos/internal/service"

	"github.com/rs/zerolog"
)

// IndicatorHandler serves the owner dashboard.
type IndicatorHandler struct {
	service service.IndicatorService
	logger  zerolog.Logger
}

// NewIndicatorHandler creates a new indicator handler.
func NewIndicatorHandler(service service.IndicatorService, logger zerolog.Logger) *IndicatorHandler {
	return &IndicatorHandler{
		service: service,
		logger:  logger.With().Str("handler", "indicator").Logger(),
	}
}

// Dashboard handles GET /api/indicators/dashboard?fromDate=...&toDate=...
func (h *IndicatorHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	from, err := queryTime(r, "fromDate")
	if err != nil || from == nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidFilter, "fromDate is required as an RFC3339 timestamp", h.logger)
		return
	}
	to, err := queryTime(r, "toDate")
	if err != nil || to == nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidFilter, "toDate is required as an RFC3339 timestamp", h.logger)
		return
	}

	dashboard, err := h.service.Dashboard(r.Context(), *from, *to)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, dashboard)
}
