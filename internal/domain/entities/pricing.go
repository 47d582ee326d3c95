package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// PricingRecord is the discount that was applied when an order was created.
//
// Storage model (DynamoDB):
//   - PK: order_id
type PricingRecord struct {
	OrderID         int64           `json:"order_id"`
	ClientID        int64           `json:"client_id"`
	Subtotal        int64           `json:"subtotal"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	DiscountAmount  int64           `json:"discount_amount"`
	FinalTotal      int64           `json:"final_total"`
	CreatedAt       time.Time       `json:"created_at"`
}

func NewPricingRecord(orderID int64, p PricingPreview) PricingRecord {
	return PricingRecord{
		OrderID:         orderID,
		ClientID:        p.ClientID,
		Subtotal:        p.Subtotal,
		DiscountPercent: p.DiscountPercent,
		DiscountAmount:  p.DiscountAmount,
		FinalTotal:      p.FinalTotal,
		CreatedAt:       time.Now().UTC(),
	}
}
