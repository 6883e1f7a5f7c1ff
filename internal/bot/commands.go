package bot

import (
	"context"
	"time"

	"ordertrack/internal/domain"
)

// OrderLifecycle is the slice of the lifecycle engine the commands use.
type OrderLifecycle interface {
	CreateOrder(ctx context.Context, name, state, author string) (*domain.Order, error)
	UpdateOrderState(ctx context.Context, orderID, newState string) (*domain.Order, string, error)
	FindOrder(ctx context.Context, orderID string) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
}

// SettingsStore is the custom-settings sibling store.
type SettingsStore interface {
	All(ctx context.Context) (map[string]any, error)
	Get(ctx context.Context, path string) (any, error)
	Set(ctx context.Context, path string, value any) error
}

const embedFooter = "Order management system"

func formatTime(t time.Time) string {
	return t.Format("Jan 2, 2006 3:04 PM")
}
