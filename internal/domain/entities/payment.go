package entities

import (
	"encoding/json"
	"time"
)

// PaymentMethod is how the client paid.
type PaymentMethod string

const (
	PaymentEfectivo      PaymentMethod = "efectivo"
	PaymentTransferencia PaymentMethod = "transferencia"
	PaymentTarjeta       PaymentMethod = "tarjeta"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentEfectivo, PaymentTransferencia, PaymentTarjeta:
		return true
	}
	return false
}

// Payment is an amount received against an order.
//
// Reference holds the card processor id for tarjeta payments and is empty
// otherwise.
type Payment struct {
	ID        int64         `json:"id"`
	OrderID   int64         `json:"order_id"`
	Amount    int64         `json:"amount"`
	Method    PaymentMethod `json:"method"`
	Concept   string        `json:"concept"`
	Notes     string        `json:"notes"`
	Reference string        `json:"reference,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// PaymentDraft is the user input for a new payment. An empty Concept is
// replaced by the suggested one. CardPayload is forwarded to the card
// processor when Method is tarjeta.
type PaymentDraft struct {
	Amount      int64
	Method      PaymentMethod
	Concept     string
	Notes       string
	CardPayload json.RawMessage
}

// PaymentFilter narrows payment listings. Zero values mean "any".
type PaymentFilter struct {
	OrderID int64
	Method  PaymentMethod
	From    time.Time
	To      time.Time
}

// Matches reports whether p satisfies every set field of f. From and To are
// inclusive calendar days.
func (f PaymentFilter) Matches(p Payment) bool {
	if f.OrderID != 0 && p.OrderID != f.OrderID {
		return false
	}
	if f.Method != "" && p.Method != f.Method {
		return false
	}
	if !f.From.IsZero() && p.CreatedAt.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && !p.CreatedAt.Before(f.To.AddDate(0, 0, 1)) {
		return false
	}
	return true
}

// CardCharge is a tarjeta payment sent to the card processor. Amount always
// comes from the validated payment, never from Payload.
type CardCharge struct {
	OrderID     int64
	Amount      int64
	Description string
	Payload     json.RawMessage
}

// CardChargeResult is the processor's answer. Only approved charges are
// recorded as payments.
type CardChargeResult struct {
	ProviderID string
	Status     string
	Raw        json.RawMessage
}

func (r CardChargeResult) Approved() bool {
	return r.Status == "approved"
}
