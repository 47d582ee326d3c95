package usecase

import (
	"bordados_admin/internal/domain/entities"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

var (
	ErrInvalidPaymentMethod        = errors.New("invalid payment method")
	ErrPaymentGatewayNotConfigured = errors.New("payment gateway not configured")
	ErrCardChargeFailed            = errors.New("card charge failed")
	ErrCardChargeDeclined          = errors.New("card charge declined")
	ErrCardChargedNotRecorded      = errors.New("card charged but payment not recorded")
)

// CardChargedNotRecordedError is returned when the processor approved a
// charge but the backend did not store the payment. The charge is not
// reversed; ProviderID identifies it for manual reconciliation. It unwraps to
// ErrCardChargedNotRecorded only, so it is never reported as retryable.
type CardChargedNotRecordedError struct {
	OrderID    int64
	ProviderID string
	Amount     int64
	Cause      error
}

func (e *CardChargedNotRecordedError) Error() string {
	return fmt.Sprintf("%v: order_id=%d provider_id=%s amount=%d: %v", ErrCardChargedNotRecorded, e.OrderID, e.ProviderID, e.Amount, e.Cause)
}

func (e *CardChargedNotRecordedError) Unwrap() error { return ErrCardChargedNotRecorded }

// PaymentReceipt is a recorded payment plus the order as re-read from the
// backend afterwards. Order is nil when the re-read failed; the payment is
// recorded regardless.
type PaymentReceipt struct {
	Payment entities.Payment       `json:"payment"`
	Order   *entities.Order        `json:"order"`
	Summary *entities.OrderSummary `json:"summary"`
}

// ConceptSuggestion is the label proposed for a payment amount. The label is
// always set; Valid and Reason report whether the amount would be accepted.
type ConceptSuggestion struct {
	Concept   string                `json:"concept"`
	Summary   entities.OrderSummary `json:"summary"`
	Valid     bool                  `json:"valid"`
	Reason    string                `json:"reason,omitempty"`
	MaxAmount int64                 `json:"max_amount"`
}

// IPaymentUseCase records and lists payments.
//
// RecordPayment always validates the amount against a fresh read of the
// order, never against a cached balance.
type IPaymentUseCase interface {
	RecordPayment(ctx context.Context, orderID int64, draft entities.PaymentDraft) (PaymentReceipt, error)
	SuggestConcept(ctx context.Context, orderID, amount int64) (ConceptSuggestion, error)
	ListByOrderID(ctx context.Context, orderID int64) ([]entities.Payment, error)
	ExportCSV(ctx context.Context, filter entities.PaymentFilter, w io.Writer) (int, error)
}

type PaymentUseCase struct {
	deps Collaborators
	log  *zap.SugaredLogger
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(deps Collaborators) *PaymentUseCase {
	return &PaymentUseCase{deps: deps, log: deps.logger()}
}

func (u *PaymentUseCase) RecordPayment(ctx context.Context, orderID int64, draft entities.PaymentDraft) (PaymentReceipt, error) {
	u.log.Infof("[payment][usecase] record start order_id=%d amount=%d method=%s", orderID, draft.Amount, draft.Method)
	if orderID <= 0 {
		return PaymentReceipt{}, ErrInvalidOrderID
	}
	if !draft.Method.IsValid() {
		u.log.Infof("[payment][usecase] invalid method order_id=%d method=%q", orderID, draft.Method)
		return PaymentReceipt{}, ErrInvalidPaymentMethod
	}

	var created entities.Payment
	err := u.deps.withGuard(ctx, u.log, orderID, "payment", func() error {
		// The balance is read while holding the guard so the check and the
		// write see the same order.
		order, gErr := u.deps.Orders.GetByID(ctx, orderID)
		if gErr != nil {
			u.log.Infof("[payment][usecase] order load failed order_id=%d err=%v", orderID, gErr)
			return gErr
		}
		if vErr := order.ValidatePayment(draft.Amount); vErr != nil {
			u.log.Infof("[payment][usecase] amount rejected order_id=%d err=%v", orderID, vErr)
			return vErr
		}

		concept := strings.TrimSpace(draft.Concept)
		if concept == "" {
			concept = order.SuggestPaymentConcept(draft.Amount)
		}
		p := entities.Payment{
			OrderID: orderID,
			Amount:  draft.Amount,
			Method:  draft.Method,
			Concept: concept,
			Notes:   strings.TrimSpace(draft.Notes),
		}
		if p.Method == entities.PaymentTarjeta {
			ref, cErr := u.chargeCard(ctx, order, p, draft)
			if cErr != nil {
				return cErr
			}
			p.Reference = ref
		}

		var pErr error
		created, pErr = u.deps.Payments.Create(ctx, p)
		if pErr != nil && p.Reference != "" {
			u.log.Errorf("[payment][usecase] card charged but not recorded order_id=%d provider_id=%s amount=%d err=%v", orderID, p.Reference, p.Amount, pErr)
			return &CardChargedNotRecordedError{OrderID: orderID, ProviderID: p.Reference, Amount: p.Amount, Cause: pErr}
		}
		return pErr
	})
	if err != nil {
		u.log.Infof("[payment][usecase] record failed order_id=%d err=%v", orderID, err)
		return PaymentReceipt{}, err
	}
	u.log.Infof("[payment][usecase] record success order_id=%d payment_id=%d concept=%q", orderID, created.ID, created.Concept)

	u.deps.publish(ctx, u.log, entities.NewOrderEvent(entities.EventPaymentRecorded, orderID, map[string]any{
		"payment_id": created.ID,
		"amount":     created.Amount,
		"method":     string(created.Method),
	}))
	u.deps.recordPayment(ctx, u.log, created.Method, created.Amount)

	receipt := PaymentReceipt{Payment: created}
	refreshed, err := u.deps.Orders.GetByID(ctx, orderID)
	if err != nil {
		u.log.Warnf("[payment][usecase] order re-read failed order_id=%d err=%v", orderID, err)
		return receipt, nil
	}
	summary := refreshed.Summary()
	receipt.Order = &refreshed
	receipt.Summary = &summary
	return receipt, nil
}

func (u *PaymentUseCase) chargeCard(ctx context.Context, order entities.Order, p entities.Payment, draft entities.PaymentDraft) (string, error) {
	if u.deps.Gateway == nil {
		u.log.Infof("[payment][usecase] gateway not configured order_id=%d", order.ID)
		return "", ErrPaymentGatewayNotConfigured
	}
	res, err := u.deps.Gateway.Charge(ctx, entities.CardCharge{
		OrderID:     order.ID,
		Amount:      p.Amount,
		Description: fmt.Sprintf("Pedido %d - %s", order.ID, p.Concept),
		Payload:     draft.CardPayload,
	})
	if err != nil {
		u.log.Infof("[payment][usecase] card charge failed order_id=%d err=%v", order.ID, err)
		return "", fmt.Errorf("%w: %v", ErrCardChargeFailed, err)
	}
	if !res.Approved() {
		u.log.Infof("[payment][usecase] card charge declined order_id=%d provider_id=%s status=%s", order.ID, res.ProviderID, res.Status)
		return "", fmt.Errorf("%w: status=%s", ErrCardChargeDeclined, res.Status)
	}
	u.log.Infof("[payment][usecase] card charge approved order_id=%d provider_id=%s amount=%d", order.ID, res.ProviderID, p.Amount)
	return res.ProviderID, nil
}

func (u *PaymentUseCase) SuggestConcept(ctx context.Context, orderID, amount int64) (ConceptSuggestion, error) {
	if orderID <= 0 {
		return ConceptSuggestion{}, ErrInvalidOrderID
	}
	order, err := u.deps.Orders.GetByID(ctx, orderID)
	if err != nil {
		return ConceptSuggestion{}, err
	}
	suggestion := ConceptSuggestion{
		Concept:   order.SuggestPaymentConcept(amount),
		Summary:   order.Summary(),
		Valid:     true,
		MaxAmount: order.DisplayPendingBalance(),
	}
	var amountErr *entities.AmountError
	if err := order.ValidatePayment(amount); errors.As(err, &amountErr) {
		suggestion.Valid = false
		suggestion.Reason = amountErr.Reason
	}
	return suggestion, nil
}

func (u *PaymentUseCase) ListByOrderID(ctx context.Context, orderID int64) ([]entities.Payment, error) {
	if orderID <= 0 {
		return nil, ErrInvalidOrderID
	}
	payments, err := u.deps.Payments.ListByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	sortPayments(payments)
	return payments, nil
}

var csvHeader = []string{"id", "pedido", "fecha", "monto", "metodo_pago", "concepto", "notas", "referencia"}

// ExportCSV writes the payments matching filter as CSV and returns the
// number of rows written. The filter is applied again locally so a backend
// that ignores query parameters still yields a correct export.
func (u *PaymentUseCase) ExportCSV(ctx context.Context, filter entities.PaymentFilter, w io.Writer) (int, error) {
	if filter.Method != "" && !filter.Method.IsValid() {
		return 0, ErrInvalidPaymentMethod
	}
	payments, err := u.deps.Payments.List(ctx, filter)
	if err != nil {
		u.log.Infof("[payment][usecase] export list failed err=%v", err)
		return 0, err
	}

	rows := make([]entities.Payment, 0, len(payments))
	for _, p := range payments {
		if filter.Matches(p) {
			rows = append(rows, p)
		}
	}
	sortPayments(rows)

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return 0, err
	}
	for _, p := range rows {
		record := []string{
			strconv.FormatInt(p.ID, 10),
			strconv.FormatInt(p.OrderID, 10),
			p.CreatedAt.Format("2006-01-02 15:04"),
			strconv.FormatInt(p.Amount, 10),
			string(p.Method),
			p.Concept,
			p.Notes,
			p.Reference,
		}
		if err := cw.Write(record); err != nil {
			return 0, err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, err
	}
	u.log.Infof("[payment][usecase] export success rows=%d", len(rows))
	return len(rows), nil
}

func sortPayments(p []entities.Payment) {
	sort.SliceStable(p, func(i, j int) bool {
		if p[i].CreatedAt.Equal(p[j].CreatedAt) {
			return p[i].ID < p[j].ID
		}
		return p[i].CreatedAt.Before(p[j].CreatedAt)
	})
}
