package server

import (
	"ordertrack/internal/order/controller"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// NewRouter wires the read-only orders API behind the origin filter.
func NewRouter(orders *controller.OrderController, allowedHost string, logger *zap.Logger) chi.Router {
	r := chi.NewRouter()

	r.Use(CORS(allowedHost))
	r.Use(RefererFilter(allowedHost, logger))

	r.Get("/", orders.HandleStatus)
	r.Get("/orders", orders.HandleListOrders)
	r.Get("/orders/{orderId}", orders.HandleGetOrder)
	r.Post("/echo", orders.HandleEcho)

	return r
}
