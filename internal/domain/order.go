package domain

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// Order is a tracked customer order with a lifecycle state and an
// append-only update history. The whole order list is persisted as one
// JSON document, so the field tags here are the wire format.
type Order struct {
	OrderID     string     `json:"orderId"`
	OrderAuthor string     `json:"orderAuthor"`
	OrderName   string     `json:"orderName"`
	State       string     `json:"state"`
	CreatedAt   time.Time  `json:"createdAt"`
	DeliveredAt *time.Time `json:"deliveredAt,omitempty"`
	Updates     []Update   `json:"updates"`
}

// Update is one timestamped audit entry in an order's history.
type Update struct {
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description"`
}

const (
	StateWaiting        = "Waiting"
	StateFinalizing     = "Finalizing"
	StateBeingWorkedOn  = "Being worked on"
	StateWaitingPayment = "Waiting for full payment"
	StateDelivered      = "Delivered"
)

// States lists every valid lifecycle state, in lifecycle order.
func States() []string {
	return []string{
		StateWaiting,
		StateFinalizing,
		StateBeingWorkedOn,
		StateWaitingPayment,
		StateDelivered,
	}
}

func ValidState(state string) bool {
	switch state {
	case StateWaiting, StateFinalizing, StateBeingWorkedOn, StateWaitingPayment, StateDelivered:
		return true
	}
	return false
}

const idSuffixAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewOrderID builds an order ID of the form ORDER-<unix-millis>-<SUFFIX>
// where SUFFIX is six random uppercase alphanumerics. Uniqueness against
// the stored list is the caller's job.
func NewOrderID(t time.Time) string {
	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = idSuffixAlphabet[rand.IntN(len(idSuffixAlphabet))]
	}
	return fmt.Sprintf("ORDER-%d-%s", t.UnixMilli(), suffix)
}

// AppendUpdate records an audit entry without touching existing history.
func (o *Order) AppendUpdate(at time.Time, description string) {
	o.Updates = append(o.Updates, Update{Timestamp: at, Description: description})
}
