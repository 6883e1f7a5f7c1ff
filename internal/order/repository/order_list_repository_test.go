package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"ordertrack/internal/domain"
	apperrors "ordertrack/internal/errors"

	"github.com/stretchr/testify/assert"
)

type mockKV struct {
	GetFunc func(ctx context.Context, key string) (json.RawMessage, bool, error)
	SetFunc func(ctx context.Context, key string, value json.RawMessage) error
}

func (m *mockKV) Get(ctx context.Context, key string) (json.RawMessage, bool, error) {
	return m.GetFunc(ctx, key)
}

func (m *mockKV) Set(ctx context.Context, key string, value json.RawMessage) error {
	return m.SetFunc(ctx, key, value)
}

func TestReadAll_AbsentKeyReadsAsEmptyList(t *testing.T) {
	kv := &mockKV{
		GetFunc: func(ctx context.Context, key string) (json.RawMessage, bool, error) {
			assert.Equal(t, "ordersList", key)
			return nil, false, nil
		},
	}

	orders, err := NewOrderListRepository(kv).ReadAll(context.Background())

	assert.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)
}

func TestReadAll_DecodesStoredList(t *testing.T) {
	kv := &mockKV{
		GetFunc: func(ctx context.Context, key string) (json.RawMessage, bool, error) {
			return json.RawMessage(`[
				{"orderId":"ORDER-1-AAAAAA","orderAuthor":"customer#1","orderName":"Widget",
				 "state":"Waiting","createdAt":"2025-03-10T12:00:00Z",
				 "updates":[{"timestamp":"2025-03-10T12:00:00Z","description":"Your order has been placed."}]}
			]`), true, nil
		},
	}

	orders, err := NewOrderListRepository(kv).ReadAll(context.Background())

	assert.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, "ORDER-1-AAAAAA", orders[0].OrderID)
	assert.Equal(t, domain.StateWaiting, orders[0].State)
	assert.Len(t, orders[0].Updates, 1)
}

func TestReadAll_CorruptPayload(t *testing.T) {
	kv := &mockKV{
		GetFunc: func(ctx context.Context, key string) (json.RawMessage, bool, error) {
			return json.RawMessage(`{"not":"a list"}`), true, nil
		},
	}

	_, err := NewOrderListRepository(kv).ReadAll(context.Background())

	_, ok := apperrors.IsStoreError(err)
	assert.True(t, ok)
}

func TestWriteAll_RoundTrips(t *testing.T) {
	var written json.RawMessage
	kv := &mockKV{
		SetFunc: func(ctx context.Context, key string, value json.RawMessage) error {
			assert.Equal(t, "ordersList", key)
			written = value
			return nil
		},
	}

	createdAt := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	orders := []domain.Order{{
		OrderID:   "ORDER-1-AAAAAA",
		OrderName: "Widget",
		State:     domain.StateWaiting,
		CreatedAt: createdAt,
		Updates:   []domain.Update{{Timestamp: createdAt, Description: "Your order has been placed."}},
	}}

	err := NewOrderListRepository(kv).WriteAll(context.Background(), orders)
	assert.NoError(t, err)

	var got []domain.Order
	assert.NoError(t, json.Unmarshal(written, &got))
	assert.Equal(t, orders, got)
}

func TestWriteAll_NilWritesEmptyList(t *testing.T) {
	var written json.RawMessage
	kv := &mockKV{
		SetFunc: func(ctx context.Context, key string, value json.RawMessage) error {
			written = value
			return nil
		},
	}

	err := NewOrderListRepository(kv).WriteAll(context.Background(), nil)

	assert.NoError(t, err)
	assert.JSONEq(t, `[]`, string(written))
}

func TestEnsureInitialized(t *testing.T) {
	t.Run("writes empty list when absent", func(t *testing.T) {
		var written json.RawMessage
		kv := &mockKV{
			GetFunc: func(ctx context.Context, key string) (json.RawMessage, bool, error) {
				return nil, false, nil
			},
			SetFunc: func(ctx context.Context, key string, value json.RawMessage) error {
				written = value
				return nil
			},
		}

		err := NewOrderListRepository(kv).EnsureInitialized(context.Background())

		assert.NoError(t, err)
		assert.JSONEq(t, `[]`, string(written))
	})

	t.Run("leaves existing list alone", func(t *testing.T) {
		kv := &mockKV{
			GetFunc: func(ctx context.Context, key string) (json.RawMessage, bool, error) {
				return json.RawMessage(`[]`), true, nil
			},
			SetFunc: func(ctx context.Context, key string, value json.RawMessage) error {
				t.Fatal("no write expected when the key exists")
				return nil
			},
		}

		err := NewOrderListRepository(kv).EnsureInitialized(context.Background())
		assert.NoError(t, err)
	})

	t.Run("propagates store errors", func(t *testing.T) {
		storeErr := apperrors.NewStoreError("read failed", errors.New("boom"))
		kv := &mockKV{
			GetFunc: func(ctx context.Context, key string) (json.RawMessage, bool, error) {
				return nil, false, storeErr
			},
		}

		err := NewOrderListRepository(kv).EnsureInitialized(context.Background())
		assert.Equal(t, storeErr, err)
	})
}
