package usecase

import (
	"bordados_admin/internal/domain/entities"
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
)

var (
	ErrInvalidOrderID    = errors.New("invalid order id")
	ErrInvalidClientID   = errors.New("invalid client id")
	ErrInvalidOrderDraft = errors.New("invalid order")
	ErrUnknownState      = errors.New("unknown order state")
)

// OrderDetail is everything the order screen shows. NextStates is always
// derived from the transition table for the current state.
type OrderDetail struct {
	Order      entities.Order          `json:"order"`
	Summary    entities.OrderSummary   `json:"summary"`
	StateKnown bool                    `json:"state_known"`
	NextStates []entities.StateInfo    `json:"next_states"`
	Payments   []entities.Payment      `json:"payments"`
	Pricing    *entities.PricingRecord `json:"pricing,omitempty"`
}

// StateCatalogEntry is a state with its legal successors.
type StateCatalogEntry struct {
	entities.StateInfo
	Next []entities.OrderState `json:"next"`
}

// IOrderUseCase exposes the order lifecycle.
//
//   - RequestTransition checks the transition table before touching the
//     backend; illegal requests never reach persistence.
//   - TransitionByID reads the order fresh under the operation guard,
//     transitions it and re-reads it so the caller never works from a
//     locally patched copy.
//   - CreateOrder applies the client's discount once, through
//     entities.ApplyDiscount, the same function used by PreviewPricing.
type IOrderUseCase interface {
	GetDetail(ctx context.Context, id int64) (OrderDetail, error)
	List(ctx context.Context, filter entities.OrderFilter) ([]entities.Order, error)
	StateCatalog() []StateCatalogEntry
	RequestTransition(ctx context.Context, order entities.Order, target entities.OrderState) (entities.Order, error)
	TransitionByID(ctx context.Context, id int64, target entities.OrderState) (OrderDetail, error)
	PreviewPricing(ctx context.Context, clientID, subtotal int64) (entities.PricingPreview, error)
	CreateOrder(ctx context.Context, draft entities.OrderDraft) (OrderDetail, error)
}

type OrderUseCase struct {
	deps Collaborators
	log  *zap.SugaredLogger
	now  func() time.Time
}

var _ IOrderUseCase = (*OrderUseCase)(nil)

func NewOrderUseCase(deps Collaborators) *OrderUseCase {
	return &OrderUseCase{
		deps: deps,
		log:  deps.logger(),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (u *OrderUseCase) GetDetail(ctx context.Context, id int64) (OrderDetail, error) {
	if id <= 0 {
		return OrderDetail{}, ErrInvalidOrderID
	}

	order, err := u.deps.Orders.GetByID(ctx, id)
	if err != nil {
		u.log.Infof("[order][usecase] get failed order_id=%d err=%v", id, err)
		return OrderDetail{}, err
	}

	var payments []entities.Payment
	if u.deps.Payments != nil {
		payments, err = u.deps.Payments.ListByOrderID(ctx, id)
		if err != nil {
			u.log.Infof("[order][usecase] payments load failed order_id=%d err=%v", id, err)
			return OrderDetail{}, err
		}
	}

	var pricing *entities.PricingRecord
	if u.deps.Audit != nil {
		rec, aErr := u.deps.Audit.GetByOrderID(ctx, id)
		switch {
		case aErr == nil:
			pricing = &rec
		case !isNotFound(aErr):
			u.log.Warnf("[order][usecase] pricing audit load failed order_id=%d err=%v", id, aErr)
		}
	}

	return u.detail(order, payments, pricing), nil
}

func (u *OrderUseCase) detail(order entities.Order, payments []entities.Payment, pricing *entities.PricingRecord) OrderDetail {
	_, known := entities.LookupTransitions(order.State)
	if !known {
		u.log.Warnf("[order][usecase] unknown state order_id=%d state=%q; using %s transitions", order.ID, order.State, entities.StateRecibido)
	}
	if payments == nil {
		payments = []entities.Payment{}
	}
	if pricing == nil && order.AppliedDiscountPercent != nil {
		// Orders created elsewhere still report the backend's discount figure.
		pricing = &entities.PricingRecord{
			OrderID:         order.ID,
			ClientID:        order.ClientID,
			DiscountPercent: *order.AppliedDiscountPercent,
			FinalTotal:      order.TotalPrice,
		}
	}
	return OrderDetail{
		Order:      order,
		Summary:    order.Summary(),
		StateKnown: known,
		NextStates: order.State.NextStateInfos(),
		Payments:   payments,
		Pricing:    pricing,
	}
}

func (u *OrderUseCase) List(ctx context.Context, filter entities.OrderFilter) ([]entities.Order, error) {
	if filter.State != "" && !filter.State.IsKnown() {
		return nil, ErrUnknownState
	}
	orders, err := u.deps.Orders.List(ctx, filter)
	if err != nil {
		u.log.Infof("[order][usecase] list failed state=%q client_id=%d err=%v", filter.State, filter.ClientID, err)
		return nil, err
	}
	if orders == nil {
		orders = []entities.Order{}
	}
	return orders, nil
}

func (u *OrderUseCase) StateCatalog() []StateCatalogEntry {
	out := make([]StateCatalogEntry, 0, len(entities.AllStates))
	for _, s := range entities.AllStates {
		out = append(out, StateCatalogEntry{StateInfo: s.Info(), Next: s.LegalNextStates()})
	}
	return out
}

func (u *OrderUseCase) RequestTransition(ctx context.Context, order entities.Order, target entities.OrderState) (entities.Order, error) {
	u.log.Infof("[order][usecase] transition start order_id=%d from=%s to=%s", order.ID, order.State, target)
	if order.ID <= 0 {
		return entities.Order{}, ErrInvalidOrderID
	}
	if err := u.validateTransition(order, target); err != nil {
		return entities.Order{}, err
	}

	var updated entities.Order
	err := u.deps.withGuard(ctx, u.log, order.ID, "transition", func() error {
		var uErr error
		updated, uErr = u.persistTransition(ctx, order, target)
		return uErr
	})
	if err != nil {
		return entities.Order{}, err
	}
	u.afterTransition(ctx, order, updated, target)
	return updated, nil
}

// TransitionByID reads the order, validates the move and writes it, all while
// holding the per-order guard, then returns the order as re-read afterwards.
func (u *OrderUseCase) TransitionByID(ctx context.Context, id int64, target entities.OrderState) (OrderDetail, error) {
	if id <= 0 {
		return OrderDetail{}, ErrInvalidOrderID
	}

	var current, updated entities.Order
	err := u.deps.withGuard(ctx, u.log, id, "transition", func() error {
		var gErr error
		current, gErr = u.deps.Orders.GetByID(ctx, id)
		if gErr != nil {
			u.log.Infof("[order][usecase] transition load failed order_id=%d err=%v", id, gErr)
			return gErr
		}
		u.log.Infof("[order][usecase] transition start order_id=%d from=%s to=%s", id, current.State, target)
		if vErr := u.validateTransition(current, target); vErr != nil {
			return vErr
		}
		var uErr error
		updated, uErr = u.persistTransition(ctx, current, target)
		return uErr
	})
	if err != nil {
		return OrderDetail{}, err
	}
	u.afterTransition(ctx, current, updated, target)
	return u.GetDetail(ctx, id)
}

func (u *OrderUseCase) validateTransition(order entities.Order, target entities.OrderState) error {
	if !order.State.IsKnown() {
		u.log.Warnf("[order][usecase] unknown state order_id=%d state=%q; using %s transitions", order.ID, order.State, entities.StateRecibido)
	}
	if err := order.State.ValidateTransition(target); err != nil {
		u.log.Infof("[order][usecase] transition rejected order_id=%d err=%v", order.ID, err)
		return err
	}
	return nil
}

func (u *OrderUseCase) persistTransition(ctx context.Context, order entities.Order, target entities.OrderState) (entities.Order, error) {
	var deliveredAt *time.Time
	if target == entities.StateEntregado {
		now := u.now()
		deliveredAt = &now
	}
	updated, err := u.deps.Orders.UpdateState(ctx, order.ID, target, deliveredAt)
	if err != nil {
		u.log.Infof("[order][usecase] transition failed order_id=%d to=%s err=%v", order.ID, target, err)
		return entities.Order{}, err
	}
	return updated, nil
}

func (u *OrderUseCase) afterTransition(ctx context.Context, order, updated entities.Order, target entities.OrderState) {
	u.log.Infof("[order][usecase] transition success order_id=%d from=%s to=%s", order.ID, order.State, updated.State)
	u.deps.publish(ctx, u.log, entities.NewOrderEvent(entities.EventOrderStateChanged, order.ID, map[string]any{
		"from": string(order.State),
		"to":   string(target),
	}))
	u.deps.recordTransition(ctx, u.log, order.State, target)
}

func (u *OrderUseCase) PreviewPricing(ctx context.Context, clientID, subtotal int64) (entities.PricingPreview, error) {
	if clientID <= 0 {
		return entities.PricingPreview{}, ErrInvalidClientID
	}
	if subtotal <= 0 {
		return entities.PricingPreview{}, &entities.AmountError{Amount: subtotal, Min: 1, Max: subtotal, Reason: "subtotal must be positive"}
	}
	client, err := u.deps.Clients.GetByID(ctx, clientID)
	if err != nil {
		u.log.Infof("[order][usecase] client load failed client_id=%d err=%v", clientID, err)
		return entities.PricingPreview{}, err
	}
	return entities.NewPricingPreview(client.ID, subtotal, client.DiscountPercent), nil
}

func (u *OrderUseCase) CreateOrder(ctx context.Context, draft entities.OrderDraft) (OrderDetail, error) {
	draft.Description = strings.TrimSpace(draft.Description)
	if err := validateDraft(draft); err != nil {
		u.log.Infof("[order][usecase] create rejected client_id=%d err=%v", draft.ClientID, err)
		return OrderDetail{}, err
	}

	pricing, err := u.PreviewPricing(ctx, draft.ClientID, draft.Subtotal)
	if err != nil {
		return OrderDetail{}, err
	}
	if pricing.FinalTotal <= 0 {
		return OrderDetail{}, &entities.AmountError{Amount: pricing.FinalTotal, Min: 1, Max: draft.Subtotal, Reason: "total after discount must be positive"}
	}
	if draft.AdvancePayment > pricing.FinalTotal {
		return OrderDetail{}, &entities.AmountError{Amount: draft.AdvancePayment, Min: 0, Max: pricing.FinalTotal, Reason: "advance exceeds total"}
	}

	created, err := u.deps.Orders.Create(ctx, draft, pricing)
	if err != nil {
		u.log.Infof("[order][usecase] create failed client_id=%d err=%v", draft.ClientID, err)
		return OrderDetail{}, err
	}
	u.log.Infof("[order][usecase] create success order_id=%d total=%d discount=%s", created.ID, pricing.FinalTotal, pricing.DiscountPercent)

	if u.deps.Audit != nil {
		if aErr := u.deps.Audit.Save(ctx, entities.NewPricingRecord(created.ID, pricing)); aErr != nil {
			u.log.Warnf("[order][usecase] pricing audit save failed order_id=%d err=%v", created.ID, aErr)
		}
	}
	u.deps.publish(ctx, u.log, entities.NewOrderEvent(entities.EventOrderCreated, created.ID, map[string]any{
		"client_id":   created.ClientID,
		"total_price": pricing.FinalTotal,
	}))

	return u.GetDetail(ctx, created.ID)
}

func validateDraft(d entities.OrderDraft) error {
	switch {
	case d.ClientID <= 0:
		return ErrInvalidClientID
	case d.Subtotal <= 0:
		return &entities.AmountError{Amount: d.Subtotal, Min: 1, Max: d.Subtotal, Reason: "subtotal must be positive"}
	case d.AdvancePayment < 0:
		return &entities.AmountError{Amount: d.AdvancePayment, Min: 0, Max: d.Subtotal, Reason: "advance cannot be negative"}
	case !d.EmbroideryType.IsValid():
		return ErrInvalidOrderDraft
	case d.Description == "":
		return ErrInvalidOrderDraft
	case d.PromisedDate.IsZero():
		return ErrInvalidOrderDraft
	}
	return nil
}
