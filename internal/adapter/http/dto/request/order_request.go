package request

import (
	"bordados_admin/internal/domain/entities"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar-day format used by every date field.
const DateLayout = "2006-01-02"

// CreateOrderRequest is the payload of POST /orders. Money is expressed in
// integer currency units.
type CreateOrderRequest struct {
	ClientID       int64  `json:"client_id" validate:"required,gt=0" example:"12"`
	PromisedDate   string `json:"promised_date" validate:"required,datetime=2006-01-02" example:"2026-11-03"`
	EmbroideryType string `json:"embroidery_type" validate:"required,oneof=computarizado manual combinado" example:"computarizado"`
	Description    string `json:"description" validate:"required,max=500" example:"Logo en 20 polos"`
	Specifications string `json:"specifications" validate:"max=2000"`
	InternalNotes  string `json:"internal_notes" validate:"max=2000"`
	Subtotal       int64  `json:"subtotal" example:"1000"`
	AdvancePayment int64  `json:"advance_payment" validate:"gte=0" example:"300"`
}

func (r CreateOrderRequest) ToDraft() (entities.OrderDraft, error) {
	promised, err := ParseDay(r.PromisedDate)
	if err != nil {
		return entities.OrderDraft{}, err
	}
	return entities.OrderDraft{
		ClientID:       r.ClientID,
		PromisedDate:   promised,
		EmbroideryType: entities.EmbroideryType(strings.TrimSpace(r.EmbroideryType)),
		Description:    r.Description,
		Specifications: strings.TrimSpace(r.Specifications),
		InternalNotes:  strings.TrimSpace(r.InternalNotes),
		Subtotal:       r.Subtotal,
		AdvancePayment: r.AdvancePayment,
	}, nil
}

// TransitionRequest is the payload of PATCH /orders/:id/state.
type TransitionRequest struct {
	State string `json:"state" validate:"required" example:"en_diseno"`
}

func (r TransitionRequest) Target() entities.OrderState {
	return entities.OrderState(strings.TrimSpace(r.State))
}

// PricingPreviewRequest is the payload of POST /orders/pricing-preview.
type PricingPreviewRequest struct {
	ClientID int64 `json:"client_id" validate:"required,gt=0" example:"12"`
	Subtotal int64 `json:"subtotal" example:"1000"`
}

// OrderListQuery holds the GET /orders filters.
type OrderListQuery struct {
	State    string `form:"state"`
	ClientID int64  `form:"client_id" validate:"gte=0"`
}

func (q OrderListQuery) ToFilter() entities.OrderFilter {
	return entities.OrderFilter{
		State:    entities.OrderState(strings.TrimSpace(q.State)),
		ClientID: q.ClientID,
	}
}

// ParseDay parses a DateLayout day in local time. Empty input yields the
// zero time.
func ParseDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}
