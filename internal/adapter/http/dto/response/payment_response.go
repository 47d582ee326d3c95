package response

import (
	"bordados_admin/internal/domain/entities"
	"bordados_admin/internal/usecase"
	"time"
)

type PaymentResponse struct {
	ID        int64     `json:"id"`
	OrderID   int64     `json:"order_id"`
	Amount    int64     `json:"amount"`
	Method    string    `json:"method"`
	Concept   string    `json:"concept"`
	Notes     string    `json:"notes"`
	Reference string    `json:"reference,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func FromPayment(p entities.Payment) PaymentResponse {
	return PaymentResponse{
		ID:        p.ID,
		OrderID:   p.OrderID,
		Amount:    p.Amount,
		Method:    string(p.Method),
		Concept:   p.Concept,
		Notes:     p.Notes,
		Reference: p.Reference,
		CreatedAt: p.CreatedAt,
	}
}

func FromPayments(payments []entities.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, FromPayment(p))
	}
	return out
}

// PaymentReceiptResponse is returned after a payment is recorded.
// OrderRefreshFailed is set when the payment was stored but the order could
// not be read back; the client should reload the order.
type PaymentReceiptResponse struct {
	Payment            PaymentResponse  `json:"payment"`
	Order              *OrderResponse   `json:"order,omitempty"`
	Summary            *SummaryResponse `json:"summary,omitempty"`
	OrderRefreshFailed bool             `json:"order_refresh_failed"`
}

func FromPaymentReceipt(r usecase.PaymentReceipt) PaymentReceiptResponse {
	res := PaymentReceiptResponse{Payment: FromPayment(r.Payment)}
	if r.Order == nil {
		res.OrderRefreshFailed = true
		return res
	}
	o := FromOrder(*r.Order)
	res.Order = &o
	if r.Summary != nil {
		s := FromSummary(*r.Summary)
		res.Summary = &s
	}
	return res
}

// ConceptSuggestionResponse always carries a concept. Valid is false when
// the amount would be rejected; Reason says why.
type ConceptSuggestionResponse struct {
	Concept   string          `json:"concept"`
	Summary   SummaryResponse `json:"summary"`
	Valid     bool            `json:"valid"`
	Reason    string          `json:"reason,omitempty"`
	MaxAmount int64           `json:"max_amount"`
}

func FromConceptSuggestion(s usecase.ConceptSuggestion) ConceptSuggestionResponse {
	return ConceptSuggestionResponse{
		Concept:   s.Concept,
		Summary:   FromSummary(s.Summary),
		Valid:     s.Valid,
		Reason:    s.Reason,
		MaxAmount: s.MaxAmount,
	}
}
