package entities

import "github.com/shopspring/decimal"

// Payment concept suggestions.
const (
	ConceptPagoFinal       = "Pago final"
	ConceptAdelantoInicial = "Adelanto inicial"
	ConceptPagoParcial     = "Pago parcial"
)

var (
	hundred    = decimal.NewFromInt(100)
	maxPercent = hundred
)

// PendingBalance is TotalPrice - AmountPaid. It can be negative when the
// backend reports an over-payment.
func (o Order) PendingBalance() int64 {
	return o.TotalPrice - o.AmountPaid
}

// DisplayPendingBalance is PendingBalance clamped at zero.
func (o Order) DisplayPendingBalance() int64 {
	if p := o.PendingBalance(); p > 0 {
		return p
	}
	return 0
}

func (o Order) IsFullyPaid() bool {
	return o.PendingBalance() <= 0
}

func (o Order) Summary() OrderSummary {
	return OrderSummary{
		TotalPrice:     o.TotalPrice,
		AmountPaid:     o.AmountPaid,
		PendingBalance: o.DisplayPendingBalance(),
		FullyPaid:      o.IsFullyPaid(),
	}
}

// ValidatePayment accepts 0 < amount <= PendingBalance.
func (o Order) ValidatePayment(amount int64) error {
	pending := o.PendingBalance()
	switch {
	case amount <= 0:
		return &AmountError{Amount: amount, Min: 1, Max: pending, Reason: "amount must be positive"}
	case amount > pending:
		return &AmountError{Amount: amount, Min: 1, Max: pending, Reason: "amount exceeds pending balance"}
	}
	return nil
}

// SuggestPaymentConcept labels a proposed payment. It is a suggestion only;
// the user may override it before submitting.
func (o Order) SuggestPaymentConcept(amount int64) string {
	switch {
	case o.PendingBalance()-amount <= 0:
		return ConceptPagoFinal
	case o.AmountPaid == 0:
		return ConceptAdelantoInicial
	default:
		return ConceptPagoParcial
	}
}

// ApplyDiscount returns floor(subtotal * percent / 100) and the discounted
// total. The percent is clamped to [0, 100]. Every price preview and every
// persisted total goes through this function so both always agree.
func ApplyDiscount(subtotal int64, percent decimal.Decimal) (discountAmount, finalTotal int64) {
	if subtotal <= 0 {
		return 0, subtotal
	}
	if percent.IsNegative() {
		percent = decimal.Zero
	}
	if percent.GreaterThan(maxPercent) {
		percent = maxPercent
	}
	discountAmount = decimal.NewFromInt(subtotal).Mul(percent).Div(hundred).Floor().IntPart()
	return discountAmount, subtotal - discountAmount
}

// PricingPreview is the result of applying a client's discount to a subtotal.
type PricingPreview struct {
	ClientID        int64           `json:"client_id"`
	Subtotal        int64           `json:"subtotal"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	DiscountAmount  int64           `json:"discount_amount"`
	FinalTotal      int64           `json:"final_total"`
}

func NewPricingPreview(clientID, subtotal int64, percent decimal.Decimal) PricingPreview {
	discount, total := ApplyDiscount(subtotal, percent)
	return PricingPreview{
		ClientID:        clientID,
		Subtotal:        subtotal,
		DiscountPercent: percent,
		DiscountAmount:  discount,
		FinalTotal:      total,
	}
}
