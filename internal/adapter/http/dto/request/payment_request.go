package request

import (
	"bordados_admin/internal/domain/entities"
	"encoding/json"
	"strings"
)

// PaymentCreateRequest is the payload of POST /orders/:id/payments.
//
// Card is forwarded untouched to the card processor for tarjeta payments;
// its amount fields are ignored in favour of Amount.
type PaymentCreateRequest struct {
	Amount  int64           `json:"amount" example:"700"`
	Method  string          `json:"method" validate:"required,oneof=efectivo transferencia tarjeta" example:"efectivo"`
	Concept string          `json:"concept" validate:"max=120" example:"Pago final"`
	Notes   string          `json:"notes" validate:"max=500"`
	Card    json.RawMessage `json:"card,omitempty" swaggertype:"object"`
}

func (r PaymentCreateRequest) ToDraft() entities.PaymentDraft {
	return entities.PaymentDraft{
		Amount:      r.Amount,
		Method:      entities.PaymentMethod(strings.TrimSpace(r.Method)),
		Concept:     r.Concept,
		Notes:       r.Notes,
		CardPayload: r.Card,
	}
}

// Redacted returns r without the card payload, for echoing back in error
// responses.
func (r PaymentCreateRequest) Redacted() PaymentCreateRequest {
	r.Card = nil
	return r
}

// PaymentExportQuery holds the GET /payments/export filters.
type PaymentExportQuery struct {
	OrderID int64  `form:"order_id" validate:"gte=0"`
	Method  string `form:"method" validate:"omitempty,oneof=efectivo transferencia tarjeta"`
	From    string `form:"from" validate:"omitempty,datetime=2006-01-02"`
	To      string `form:"to" validate:"omitempty,datetime=2006-01-02"`
}

func (q PaymentExportQuery) ToFilter() (entities.PaymentFilter, error) {
	from, err := ParseDay(q.From)
	if err != nil {
		return entities.PaymentFilter{}, err
	}
	to, err := ParseDay(q.To)
	if err != nil {
		return entities.PaymentFilter{}, err
	}
	return entities.PaymentFilter{
		OrderID: q.OrderID,
		Method:  entities.PaymentMethod(q.Method),
		From:    from,
		To:      to,
	}, nil
}
