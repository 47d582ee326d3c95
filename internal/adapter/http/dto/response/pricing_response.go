package response

import (
	"bordados_admin/internal/domain/entities"
	"time"
)

type PricingPreviewResponse struct {
	ClientID        int64  `json:"client_id"`
	Subtotal        int64  `json:"subtotal"`
	DiscountPercent string `json:"discount_percent"`
	DiscountAmount  int64  `json:"discount_amount"`
	FinalTotal      int64  `json:"final_total"`
}

func FromPricingPreview(p entities.PricingPreview) PricingPreviewResponse {
	return PricingPreviewResponse{
		ClientID:        p.ClientID,
		Subtotal:        p.Subtotal,
		DiscountPercent: p.DiscountPercent.StringFixed(2),
		DiscountAmount:  p.DiscountAmount,
		FinalTotal:      p.FinalTotal,
	}
}

// PricingResponse is the discount recorded when the order was created.
type PricingResponse struct {
	OrderID int64 `json:"order_id"`
	PricingPreviewResponse
	CreatedAt time.Time `json:"created_at"`
}

func FromPricingRecord(r entities.PricingRecord) PricingResponse {
	return PricingResponse{
		OrderID: r.OrderID,
		PricingPreviewResponse: PricingPreviewResponse{
			ClientID:        r.ClientID,
			Subtotal:        r.Subtotal,
			DiscountPercent: r.DiscountPercent.StringFixed(2),
			DiscountAmount:  r.DiscountAmount,
			FinalTotal:      r.FinalTotal,
		},
		CreatedAt: r.CreatedAt,
	}
}
