package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"ordertrack/internal/domain"
	apperrors "ordertrack/internal/errors"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type mockOrderListRepository struct {
	ReadAllFunc  func(ctx context.Context) ([]domain.Order, error)
	WriteAllFunc func(ctx context.Context, orders []domain.Order) error
}

func (m *mockOrderListRepository) ReadAll(ctx context.Context) ([]domain.Order, error) {
	return m.ReadAllFunc(ctx)
}

func (m *mockOrderListRepository) WriteAll(ctx context.Context, orders []domain.Order) error {
	return m.WriteAllFunc(ctx, orders)
}

// inMemoryRepo backs the service with a plain slice, mimicking the
// whole-list read-modify-write cycle of the real store.
type inMemoryRepo struct {
	orders []domain.Order
	writes int
}

func (r *inMemoryRepo) ReadAll(ctx context.Context) ([]domain.Order, error) {
	out := make([]domain.Order, len(r.orders))
	copy(out, r.orders)
	return out, nil
}

func (r *inMemoryRepo) WriteAll(ctx context.Context, orders []domain.Order) error {
	r.orders = orders
	r.writes++
	return nil
}

var testTime = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestService(repo OrderListRepository) *LifecycleService {
	return NewLifecycleService(repo, zap.NewNop(), func() time.Time { return testTime })
}

func TestCreateOrder_ValidStates(t *testing.T) {
	for _, state := range domain.States() {
		repo := &inMemoryRepo{}
		svc := newTestService(repo)

		order, err := svc.CreateOrder(context.Background(), "Widget", state, "customer#1")

		assert.NoError(t, err)
		assert.NotEmpty(t, order.OrderID)
		assert.True(t, strings.HasPrefix(order.OrderID, "ORDER-"))
		assert.Equal(t, "Widget", order.OrderName)
		assert.Equal(t, "customer#1", order.OrderAuthor)
		assert.Equal(t, state, order.State)
		assert.Equal(t, testTime, order.CreatedAt)
		assert.GreaterOrEqual(t, len(order.Updates), 1)

		if state == domain.StateDelivered {
			assert.NotNil(t, order.DeliveredAt)
			assert.Equal(t, testTime, *order.DeliveredAt)
			assert.Len(t, order.Updates, 2)
		} else {
			assert.Nil(t, order.DeliveredAt)
			assert.Len(t, order.Updates, 1)
		}

		assert.Len(t, repo.orders, 1)
		assert.Equal(t, 1, repo.writes)
	}
}

func TestCreateOrder_InvalidState(t *testing.T) {
	svc := newTestService(&inMemoryRepo{})

	_, err := svc.CreateOrder(context.Background(), "Widget", "Shipped", "customer#1")

	ve, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
	assert.Contains(t, ve.Message, "Shipped")
}

func TestCreateOrder_CreationEntryText(t *testing.T) {
	svc := newTestService(&inMemoryRepo{})

	order, err := svc.CreateOrder(context.Background(), "Widget", domain.StateWaiting, "customer#1")

	assert.NoError(t, err)
	assert.Equal(t, "Your order has been placed.", order.Updates[0].Description)
}

func TestCreateOrder_RegeneratesCollidingID(t *testing.T) {
	// Pre-seed many orders so a collision with a fresh ID would be
	// visible; IDs carry a random suffix, so the check is structural.
	repo := &inMemoryRepo{}
	svc := newTestService(repo)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		order, err := svc.CreateOrder(context.Background(), "Widget", domain.StateWaiting, "customer#1")
		assert.NoError(t, err)
		assert.False(t, seen[order.OrderID], "duplicate order ID %s", order.OrderID)
		seen[order.OrderID] = true
	}
}

func TestCreateOrder_ReadError(t *testing.T) {
	storeErr := apperrors.NewStoreError("read failed", errors.New("boom"))
	repo := &mockOrderListRepository{
		ReadAllFunc: func(ctx context.Context) ([]domain.Order, error) {
			return nil, storeErr
		},
	}
	svc := newTestService(repo)

	_, err := svc.CreateOrder(context.Background(), "Widget", domain.StateWaiting, "customer#1")

	assert.Equal(t, storeErr, err)
}

func TestUpdateOrderState_TransitionToDelivered(t *testing.T) {
	repo := &inMemoryRepo{}
	svc := newTestService(repo)

	created, err := svc.CreateOrder(context.Background(), "Widget", domain.StateWaiting, "customer#1")
	assert.NoError(t, err)

	updated, oldState, err := svc.UpdateOrderState(context.Background(), created.OrderID, domain.StateDelivered)

	assert.NoError(t, err)
	assert.Equal(t, domain.StateWaiting, oldState)
	assert.Equal(t, domain.StateDelivered, updated.State)
	assert.NotNil(t, updated.DeliveredAt)
	assert.Equal(t, "Your order has been delivered!", updated.Updates[len(updated.Updates)-1].Description)
}

func TestUpdateOrderState_DeliveryReconfirmed(t *testing.T) {
	repo := &inMemoryRepo{}
	svc := newTestService(repo)

	created, _ := svc.CreateOrder(context.Background(), "Widget", domain.StateDelivered, "customer#1")
	firstDeliveredAt := *created.DeliveredAt

	updated, oldState, err := svc.UpdateOrderState(context.Background(), created.OrderID, domain.StateDelivered)

	assert.NoError(t, err)
	assert.Equal(t, domain.StateDelivered, oldState)
	assert.Equal(t, firstDeliveredAt, *updated.DeliveredAt)
	assert.Equal(t, "Order delivery confirmed.", updated.Updates[len(updated.Updates)-1].Description)
}

func TestUpdateOrderState_RevertFromDelivered(t *testing.T) {
	repo := &inMemoryRepo{}
	svc := newTestService(repo)

	created, _ := svc.CreateOrder(context.Background(), "Widget", domain.StateDelivered, "customer#1")

	updated, oldState, err := svc.UpdateOrderState(context.Background(), created.OrderID, domain.StateFinalizing)

	assert.NoError(t, err)
	assert.Equal(t, domain.StateDelivered, oldState)
	assert.Equal(t, domain.StateFinalizing, updated.State)
	assert.Nil(t, updated.DeliveredAt)
	assert.Equal(t, "Order status changed from Delivered to Finalizing.", updated.Updates[len(updated.Updates)-1].Description)
}

func TestUpdateOrderState_PlainTransition(t *testing.T) {
	repo := &inMemoryRepo{}
	svc := newTestService(repo)

	created, _ := svc.CreateOrder(context.Background(), "Widget", domain.StateWaiting, "customer#1")

	updated, oldState, err := svc.UpdateOrderState(context.Background(), created.OrderID, domain.StateBeingWorkedOn)

	assert.NoError(t, err)
	assert.Equal(t, domain.StateWaiting, oldState)
	assert.Nil(t, updated.DeliveredAt)
	assert.Equal(t, "Order status updated to Being worked on.", updated.Updates[len(updated.Updates)-1].Description)
}

func TestUpdateOrderState_SameStateIsIdempotentButAudited(t *testing.T) {
	repo := &inMemoryRepo{}
	svc := newTestService(repo)

	created, _ := svc.CreateOrder(context.Background(), "Widget", domain.StateWaiting, "customer#1")

	first, _, err := svc.UpdateOrderState(context.Background(), created.OrderID, domain.StateWaiting)
	assert.NoError(t, err)
	second, _, err := svc.UpdateOrderState(context.Background(), created.OrderID, domain.StateWaiting)
	assert.NoError(t, err)

	assert.Equal(t, first.State, second.State)
	assert.Nil(t, second.DeliveredAt)
	assert.Len(t, second.Updates, len(first.Updates)+1)
	assert.Equal(t, "Order status confirmed as Waiting.", second.Updates[len(second.Updates)-1].Description)
	// Confirmations still hit the store.
	assert.Equal(t, 3, repo.writes)
}

func TestUpdateOrderState_DeliveredAtTracksFinalState(t *testing.T) {
	sequences := [][]string{
		{domain.StateFinalizing, domain.StateDelivered},
		{domain.StateDelivered, domain.StateWaiting},
		{domain.StateDelivered, domain.StateWaitingPayment, domain.StateDelivered},
	}

	for _, seq := range sequences {
		repo := &inMemoryRepo{}
		svc := newTestService(repo)
		created, _ := svc.CreateOrder(context.Background(), "Widget", domain.StateWaiting, "customer#1")

		var last *domain.Order
		for _, state := range seq {
			var err error
			last, _, err = svc.UpdateOrderState(context.Background(), created.OrderID, state)
			assert.NoError(t, err)
		}

		if last.State == domain.StateDelivered {
			assert.NotNil(t, last.DeliveredAt)
		} else {
			assert.Nil(t, last.DeliveredAt)
		}
	}
}

func TestUpdateOrderState_EmptyList(t *testing.T) {
	svc := newTestService(&inMemoryRepo{})

	_, _, err := svc.UpdateOrderState(context.Background(), "ORDER-1-ABCDEF", domain.StateWaiting)

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestUpdateOrderState_UnknownID(t *testing.T) {
	repo := &inMemoryRepo{}
	svc := newTestService(repo)
	svc.CreateOrder(context.Background(), "Widget", domain.StateWaiting, "customer#1")

	_, _, err := svc.UpdateOrderState(context.Background(), "ORDER-1-ABCDEF", domain.StateWaiting)

	nf, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
	assert.Contains(t, nf.Message, "ORDER-1-ABCDEF")
}

func TestUpdateOrderState_InvalidState(t *testing.T) {
	svc := newTestService(&inMemoryRepo{})

	_, _, err := svc.UpdateOrderState(context.Background(), "ORDER-1-ABCDEF", "Lost")

	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
}

func TestFindOrder(t *testing.T) {
	repo := &inMemoryRepo{}
	svc := newTestService(repo)
	created, _ := svc.CreateOrder(context.Background(), "Widget", domain.StateWaiting, "customer#1")

	found, err := svc.FindOrder(context.Background(), created.OrderID)
	assert.NoError(t, err)
	assert.Equal(t, created.OrderID, found.OrderID)

	_, err = svc.FindOrder(context.Background(), "ORDER-1-ABCDEF")
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestListOrders_PreservesInsertionOrder(t *testing.T) {
	repo := &inMemoryRepo{}
	svc := newTestService(repo)

	first, _ := svc.CreateOrder(context.Background(), "First", domain.StateWaiting, "customer#1")
	second, _ := svc.CreateOrder(context.Background(), "Second", domain.StateWaiting, "customer#1")

	orders, err := svc.ListOrders(context.Background())

	assert.NoError(t, err)
	assert.Len(t, orders, 2)
	assert.Equal(t, first.OrderID, orders[0].OrderID)
	assert.Equal(t, second.OrderID, orders[1].OrderID)
}

// The full lifecycle scenario: create waiting, deliver, revert.
func TestLifecycle_EndToEnd(t *testing.T) {
	repo := &inMemoryRepo{}
	svc := newTestService(repo)

	created, err := svc.CreateOrder(context.Background(), "Widget", domain.StateWaiting, "customer#1")
	assert.NoError(t, err)

	found, err := svc.FindOrder(context.Background(), created.OrderID)
	assert.NoError(t, err)
	assert.Equal(t, domain.StateWaiting, found.State)
	assert.Len(t, found.Updates, 1)

	delivered, _, err := svc.UpdateOrderState(context.Background(), created.OrderID, domain.StateDelivered)
	assert.NoError(t, err)
	assert.NotNil(t, delivered.DeliveredAt)
	assert.Len(t, delivered.Updates, 2)

	reverted, oldState, err := svc.UpdateOrderState(context.Background(), created.OrderID, domain.StateWaiting)
	assert.NoError(t, err)
	assert.Equal(t, domain.StateDelivered, oldState)
	assert.Nil(t, reverted.DeliveredAt)
	assert.Len(t, reverted.Updates, 3)
	assert.Contains(t, reverted.Updates[2].Description, "changed from Delivered to Waiting")
}
