package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// EmbroideryType is the technique used to produce an order.
type EmbroideryType string

const (
	EmbroideryComputarizado EmbroideryType = "computarizado"
	EmbroideryManual        EmbroideryType = "manual"
	EmbroideryCombinado     EmbroideryType = "combinado"
)

func (t EmbroideryType) IsValid() bool {
	switch t {
	case EmbroideryComputarizado, EmbroideryManual, EmbroideryCombinado:
		return true
	}
	return false
}

// Order (pedido) as reported by the shop backend.
//
// Monetary representation:
//   - All amounts are integers in the smallest unit of the deployment currency.
//   - AmountPaid is the backend-reported cumulative figure (advance included).
//     Balances are derived from it, never from a locally held payment list.
//
// AppliedDiscountPercent is nil for orders whose pricing was not recorded at
// creation time.
type Order struct {
	ID int64 `json:"id"`

	ClientID       int64           `json:"client_id"`
	ClientName     string          `json:"client_name"`
	ClientPhone    string          `json:"client_phone"`
	ClientDiscount decimal.Decimal `json:"client_discount"`

	PromisedDate   time.Time      `json:"promised_date"`
	DeliveredAt    *time.Time     `json:"delivered_at,omitempty"`
	EmbroideryType EmbroideryType `json:"embroidery_type"`
	Description    string         `json:"description"`
	Specifications string         `json:"specifications"`
	InternalNotes  string         `json:"internal_notes"`

	TotalPrice     int64 `json:"total_price"`
	AdvancePayment int64 `json:"advance_payment"`
	AmountPaid     int64 `json:"amount_paid"`

	AppliedDiscountPercent *decimal.Decimal `json:"applied_discount_percent,omitempty"`

	State     OrderState `json:"state"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// OrderDraft carries the user input for a new order. Subtotal is the price
// before the client's special discount.
type OrderDraft struct {
	ClientID       int64
	PromisedDate   time.Time
	EmbroideryType EmbroideryType
	Description    string
	Specifications string
	InternalNotes  string
	Subtotal       int64
	AdvancePayment int64
}

// OrderFilter narrows order listings. Zero values mean "any".
type OrderFilter struct {
	State    OrderState
	ClientID int64
}

// OrderSummary is the set of money figures shown next to an order.
type OrderSummary struct {
	TotalPrice     int64 `json:"total_price"`
	AmountPaid     int64 `json:"amount_paid"`
	PendingBalance int64 `json:"pending_balance"`
	FullyPaid      bool  `json:"fully_paid"`
}
