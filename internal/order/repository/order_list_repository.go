package repository

import (
	"context"
	"encoding/json"

	"ordertrack/internal/domain"
	apperrors "ordertrack/internal/errors"
	"ordertrack/internal/kvstore"
)

const ordersListKey = "ordersList"

// OrderListRepository persists the whole order list as one value under a
// single key. There is no per-order persistence: every mutation the
// callers perform is a full read-modify-write of the list.
type OrderListRepository struct {
	store kvstore.Store
}

func NewOrderListRepository(store kvstore.Store) *OrderListRepository {
	return &OrderListRepository{store: store}
}

// ReadAll returns the stored list in insertion order. An absent key reads
// as an empty list.
func (r *OrderListRepository) ReadAll(ctx context.Context) ([]domain.Order, error) {
	raw, ok, err := r.store.Get(ctx, ordersListKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []domain.Order{}, nil
	}

	var orders []domain.Order
	if err := json.Unmarshal(raw, &orders); err != nil {
		return nil, apperrors.NewStoreError("decoding orders list", err)
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}

// WriteAll replaces the stored list in one write. Last writer wins; there
// is no locking between concurrent read-modify-write cycles.
func (r *OrderListRepository) WriteAll(ctx context.Context, orders []domain.Order) error {
	if orders == nil {
		orders = []domain.Order{}
	}

	raw, err := json.Marshal(orders)
	if err != nil {
		return apperrors.NewStoreError("encoding orders list", err)
	}
	return r.store.Set(ctx, ordersListKey, raw)
}

// EnsureInitialized writes an empty list when the key is absent, so the
// read API can distinguish "no orders yet" from a missing store.
func (r *OrderListRepository) EnsureInitialized(ctx context.Context) error {
	_, ok, err := r.store.Get(ctx, ordersListKey)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	return r.store.Set(ctx, ordersListKey, json.RawMessage(`[]`))
}
