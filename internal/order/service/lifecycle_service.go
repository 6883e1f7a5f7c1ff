package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ordertrack/internal/domain"
	apperrors "ordertrack/internal/errors"

	"go.uber.org/zap"
)

// OrderListRepository is the whole-list store contract the engine works
// against.
type OrderListRepository interface {
	ReadAll(ctx context.Context) ([]domain.Order, error)
	WriteAll(ctx context.Context, orders []domain.Order) error
}

// LifecycleService owns order creation and state transitions, including
// the audit trail that accompanies every change. All operations are one
// read of the full list, an in-memory mutation, and one write back.
type LifecycleService struct {
	orders OrderListRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewLifecycleService builds the engine. now may be nil, in which case
// time.Now is used; tests inject a fixed clock.
func NewLifecycleService(orders OrderListRepository, logger *zap.Logger, now func() time.Time) *LifecycleService {
	if now == nil {
		now = time.Now
	}
	return &LifecycleService{
		orders: orders,
		logger: logger,
		now:    now,
	}
}

// CreateOrder validates the initial state, generates a unique order ID,
// records the creation audit entry (and a delivery entry when the order
// is created already delivered) and appends the order to the stored list.
func (s *LifecycleService) CreateOrder(ctx context.Context, name, state, author string) (*domain.Order, error) {
	if !domain.ValidState(state) {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("invalid state %q", state),
			apperrors.ValidationDetail{Field: "state", Message: "state must be one of: " + statesList()},
		)
	}

	orders, err := s.orders.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()

	// The time+random scheme makes collisions unlikely but not
	// impossible; regenerate until the ID is unused in the loaded list.
	id := domain.NewOrderID(now)
	for containsID(orders, id) {
		id = domain.NewOrderID(now)
	}

	order := domain.Order{
		OrderID:     id,
		OrderAuthor: author,
		OrderName:   name,
		State:       state,
		CreatedAt:   now,
	}
	order.AppendUpdate(now, "Your order has been placed.")

	if state == domain.StateDelivered {
		deliveredAt := now
		order.DeliveredAt = &deliveredAt
		order.AppendUpdate(now, "Your order has been delivered!")
	}

	orders = append(orders, order)
	if err := s.orders.WriteAll(ctx, orders); err != nil {
		return nil, err
	}

	s.logger.Info("order created",
		zap.String("orderId", order.OrderID),
		zap.String("state", order.State),
		zap.String("author", order.OrderAuthor),
	)

	return &order, nil
}

// UpdateOrderState applies a state transition and appends the matching
// audit entry. The list is written back even when the state did not
// change, so confirmations stay on the audit trail. Returns the updated
// order together with the state it held before.
func (s *LifecycleService) UpdateOrderState(ctx context.Context, orderID, newState string) (*domain.Order, string, error) {
	if !domain.ValidState(newState) {
		return nil, "", apperrors.NewValidationError(
			fmt.Sprintf("invalid state %q", newState),
			apperrors.ValidationDetail{Field: "new_state", Message: "state must be one of: " + statesList()},
		)
	}

	orders, err := s.orders.ReadAll(ctx)
	if err != nil {
		return nil, "", err
	}
	if len(orders) == 0 {
		return nil, "", apperrors.NewNotFoundError("no orders found in the database")
	}

	idx := indexOfID(orders, orderID)
	if idx < 0 {
		return nil, "", apperrors.NewNotFoundError(fmt.Sprintf("order with ID %s not found", orderID))
	}

	order := &orders[idx]
	oldState := order.State
	now := s.now()

	switch {
	case newState == domain.StateDelivered && oldState != domain.StateDelivered:
		deliveredAt := now
		order.DeliveredAt = &deliveredAt
		order.AppendUpdate(now, "Your order has been delivered!")
	case newState == domain.StateDelivered && oldState == domain.StateDelivered:
		order.AppendUpdate(now, "Order delivery confirmed.")
	case oldState == domain.StateDelivered:
		order.DeliveredAt = nil
		order.AppendUpdate(now, fmt.Sprintf("Order status changed from Delivered to %s.", newState))
	case oldState != newState:
		order.AppendUpdate(now, fmt.Sprintf("Order status updated to %s.", newState))
	default:
		order.AppendUpdate(now, fmt.Sprintf("Order status confirmed as %s.", newState))
	}

	order.State = newState

	if err := s.orders.WriteAll(ctx, orders); err != nil {
		return nil, "", err
	}

	s.logger.Info("order state updated",
		zap.String("orderId", order.OrderID),
		zap.String("oldState", oldState),
		zap.String("newState", newState),
	)

	updated := *order
	return &updated, oldState, nil
}

// FindOrder looks an order up by ID with a linear scan; read-only.
func (s *LifecycleService) FindOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	orders, err := s.orders.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, apperrors.NewNotFoundError("no orders found in the database")
	}

	idx := indexOfID(orders, orderID)
	if idx < 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("order with ID %s not found", orderID))
	}

	found := orders[idx]
	return &found, nil
}

// ListOrders returns the full stored list in insertion order. Callers
// sort a copy for display.
func (s *LifecycleService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.orders.ReadAll(ctx)
}

func containsID(orders []domain.Order, id string) bool {
	return indexOfID(orders, id) >= 0
}

func indexOfID(orders []domain.Order, id string) int {
	for i := range orders {
		if orders[i].OrderID == id {
			return i
		}
	}
	return -1
}

func statesList() string {
	return strings.Join(domain.States(), ", ")
}
