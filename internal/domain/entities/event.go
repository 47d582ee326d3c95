package entities

import (
	"time"

	"github.com/google/uuid"
)

// EventType names a confirmed change in the backend.
type EventType string

const (
	EventOrderCreated      EventType = "order.created"
	EventOrderStateChanged EventType = "order.state_changed"
	EventPaymentRecorded   EventType = "payment.recorded"
)

// OrderEvent is published after the backend confirms a write.
type OrderEvent struct {
	ID         string         `json:"id"`
	Type       EventType      `json:"type"`
	OrderID    int64          `json:"order_id"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload,omitempty"`
}

func NewOrderEvent(t EventType, orderID int64, payload map[string]any) OrderEvent {
	return OrderEvent{
		ID:         uuid.NewString(),
		Type:       t,
		OrderID:    orderID,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}
