package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"ordertrack/internal/domain"
	apperrors "ordertrack/internal/errors"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderReader interface {
	FindOrder(ctx context.Context, orderID string) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
}

// OrderController serves the read-only orders API.
type OrderController struct {
	orders OrderReader
	logger *zap.Logger
}

func NewOrderController(orders OrderReader, logger *zap.Logger) *OrderController {
	return &OrderController{
		orders: orders,
		logger: logger,
	}
}

func (c *OrderController) HandleStatus(w http.ResponseWriter, r *http.Request) {
	c.writeJSON(w, http.StatusOK, map[string]string{"status": "Hi!"})
}

func (c *OrderController) HandleGetOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	orderID := chi.URLParam(r, "orderId")

	order, err := c.orders.FindOrder(r.Context(), orderID)
	if err != nil {
		if nf, ok := apperrors.IsNotFoundError(err); ok {
			c.writeJSON(w, http.StatusNotFound, map[string]string{"error": nf.Message})
			return
		}
		logger.Error("fetching order failed", zap.String("orderId", orderID), zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "Internal server error while fetching order.",
		})
		return
	}

	c.writeJSON(w, http.StatusOK, order)
}

func (c *OrderController) HandleListOrders(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	orders, err := c.orders.ListOrders(r.Context())
	if err != nil {
		logger.Error("fetching all orders failed", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "Internal server error while fetching orders.",
		})
		return
	}

	if orders == nil {
		orders = []domain.Order{}
	}
	c.writeJSON(w, http.StatusOK, orders)
}

// HandleEcho returns the JSON body unchanged; a convenience endpoint the
// original API exposed for connectivity checks.
func (c *OrderController) HandleEcho(w http.ResponseWriter, r *http.Request) {
	var body any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		c.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Request must be JSON"})
		return
	}
	c.writeJSON(w, http.StatusOK, body)
}

func (c *OrderController) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		c.logger.Error("encoding response failed", zap.Error(err))
	}
}
