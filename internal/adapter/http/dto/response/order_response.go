package response

import (
	"bordados_admin/internal/domain/entities"
	"bordados_admin/internal/usecase"
	"time"
)

const dayLayout = "2006-01-02"

type SummaryResponse struct {
	TotalPrice     int64 `json:"total_price"`
	AmountPaid     int64 `json:"amount_paid"`
	PendingBalance int64 `json:"pending_balance"`
	FullyPaid      bool  `json:"fully_paid"`
}

func FromSummary(s entities.OrderSummary) SummaryResponse {
	return SummaryResponse{
		TotalPrice:     s.TotalPrice,
		AmountPaid:     s.AmountPaid,
		PendingBalance: s.PendingBalance,
		FullyPaid:      s.FullyPaid,
	}
}

type StateResponse struct {
	State       string   `json:"state"`
	Label       string   `json:"label"`
	Description string   `json:"description"`
	Terminal    bool     `json:"terminal"`
	Next        []string `json:"next,omitempty"`
}

func FromStateInfo(info entities.StateInfo) StateResponse {
	return StateResponse{
		State:       string(info.State),
		Label:       info.Label,
		Description: info.Description,
		Terminal:    info.Terminal,
	}
}

func FromStateCatalog(entries []usecase.StateCatalogEntry) []StateResponse {
	out := make([]StateResponse, 0, len(entries))
	for _, e := range entries {
		r := FromStateInfo(e.StateInfo)
		r.Next = make([]string, 0, len(e.Next))
		for _, n := range e.Next {
			r.Next = append(r.Next, string(n))
		}
		out = append(out, r)
	}
	return out
}

type OrderResponse struct {
	ID                     int64     `json:"id"`
	ClientID               int64     `json:"client_id"`
	ClientName             string    `json:"client_name"`
	ClientPhone            string    `json:"client_phone"`
	PromisedDate           string    `json:"promised_date"`
	DeliveredAt            *string   `json:"delivered_at,omitempty"`
	EmbroideryType         string    `json:"embroidery_type"`
	Description            string    `json:"description"`
	Specifications         string    `json:"specifications"`
	InternalNotes          string    `json:"internal_notes"`
	TotalPrice             int64     `json:"total_price"`
	AdvancePayment         int64     `json:"advance_payment"`
	AmountPaid             int64     `json:"amount_paid"`
	PendingBalance         int64     `json:"pending_balance"`
	FullyPaid              bool      `json:"fully_paid"`
	AppliedDiscountPercent *string   `json:"applied_discount_percent,omitempty"`
	State                  string    `json:"state"`
	StateLabel             string    `json:"state_label"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

func FromOrder(o entities.Order) OrderResponse {
	res := OrderResponse{
		ID:             o.ID,
		ClientID:       o.ClientID,
		ClientName:     o.ClientName,
		ClientPhone:    o.ClientPhone,
		EmbroideryType: string(o.EmbroideryType),
		Description:    o.Description,
		Specifications: o.Specifications,
		InternalNotes:  o.InternalNotes,
		TotalPrice:     o.TotalPrice,
		AdvancePayment: o.AdvancePayment,
		AmountPaid:     o.AmountPaid,
		PendingBalance: o.DisplayPendingBalance(),
		FullyPaid:      o.IsFullyPaid(),
		State:          string(o.State),
		StateLabel:     o.State.Info().Label,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
	if !o.PromisedDate.IsZero() {
		res.PromisedDate = o.PromisedDate.Format(dayLayout)
	}
	if o.DeliveredAt != nil {
		d := o.DeliveredAt.Format(dayLayout)
		res.DeliveredAt = &d
	}
	if o.AppliedDiscountPercent != nil {
		p := o.AppliedDiscountPercent.StringFixed(2)
		res.AppliedDiscountPercent = &p
	}
	return res
}

func FromOrders(orders []entities.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromOrder(o))
	}
	return out
}

type OrderDetailResponse struct {
	Order      OrderResponse     `json:"order"`
	Summary    SummaryResponse   `json:"summary"`
	StateKnown bool              `json:"state_known"`
	NextStates []StateResponse   `json:"next_states"`
	Payments   []PaymentResponse `json:"payments"`
	Pricing    *PricingResponse  `json:"pricing,omitempty"`
}

func FromOrderDetail(d usecase.OrderDetail) OrderDetailResponse {
	res := OrderDetailResponse{
		Order:      FromOrder(d.Order),
		Summary:    FromSummary(d.Summary),
		StateKnown: d.StateKnown,
		NextStates: make([]StateResponse, 0, len(d.NextStates)),
		Payments:   FromPayments(d.Payments),
	}
	for _, s := range d.NextStates {
		res.NextStates = append(res.NextStates, FromStateInfo(s))
	}
	if d.Pricing != nil {
		p := FromPricingRecord(*d.Pricing)
		res.Pricing = &p
	}
	return res
}
