package router

import (
	"net/http"

	"restaurant-pos/internal/handler"
	"restaurant-pos/internal/middleware"

	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers served by the router.
type Handlers struct {
	Orders     *handler.OrderHandler
	Dishes     *handler.DishHandler
	Indicators *handler.IndicatorHandler
}

// Options configures the middleware chain.
type Options struct {
	APIKey         string
	AllowedOrigins []string
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, opts Options, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", handler.Health)

	mux.HandleFunc("POST /api/orders", h.Orders.Create)
	mux.HandleFunc("GET /api/orders", h.Orders.List)
	mux.HandleFunc("POST /api/orders/pay", h.Orders.Pay)
	mux.HandleFunc("GET /api/orders/{id}", h.Orders.GetByID)
	mux.HandleFunc("PUT /api/orders/{id}", h.Orders.Update)

	mux.HandleFunc("GET /api/dishes", h.Dishes.List)
	mux.HandleFunc("GET /api/dishes/{id}", h.Dishes.GetByID)

	mux.HandleFunc("GET /api/indicators/dashboard", h.Indicators.Dashboard)

	// Apply middleware in order: CorrelationID -> Recovery -> Logging -> CORS -> APIKeyAuth -> StaffID
	var handler http.Handler = mux
	handler = middleware.StaffID(handler)
	handler = middleware.APIKeyAuth(opts.APIKey, logger)(handler)
	handler = middleware.CORS(opts.AllowedOrigins)(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Recovery(logger)(handler)
	handler = middleware.CorrelationID(handler)

	return handler
}
