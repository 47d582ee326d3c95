package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"bordados_admin/internal/domain/entities"
	mock_interfaces "bordados_admin/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"
)

type paymentMocks struct {
	orders   *mock_interfaces.MockIOrderRepository
	payments *mock_interfaces.MockIPaymentRepository
	guard    *mock_interfaces.MockIOperationGuard
	events   *mock_interfaces.MockIEventPublisher
	metrics  *mock_interfaces.MockIMetricsRecorder
	gateway  *mock_interfaces.MockIPaymentGateway
}

func newPaymentUseCase(t *testing.T) (*PaymentUseCase, paymentMocks) {
	ctrl := gomock.NewController(t)
	m := paymentMocks{
		orders:   mock_interfaces.NewMockIOrderRepository(ctrl),
		payments: mock_interfaces.NewMockIPaymentRepository(ctrl),
		guard:    mock_interfaces.NewMockIOperationGuard(ctrl),
		events:   mock_interfaces.NewMockIEventPublisher(ctrl),
		metrics:  mock_interfaces.NewMockIMetricsRecorder(ctrl),
		gateway:  mock_interfaces.NewMockIPaymentGateway(ctrl),
	}
	uc := NewPaymentUseCase(Collaborators{
		Orders:   m.orders,
		Payments: m.payments,
		Guard:    m.guard,
		Events:   m.events,
		Metrics:  m.metrics,
		Gateway:  m.gateway,
		Logger:   zaptest.NewLogger(t).Sugar(),
	})
	return uc, m
}

func TestPaymentUseCase_RecordPayment_Validations(t *testing.T) {
	t.Run("invalid order id", func(t *testing.T) {
		uc, _ := newPaymentUseCase(t)
		_, err := uc.RecordPayment(context.Background(), 0, entities.PaymentDraft{Amount: 1, Method: entities.PaymentEfectivo})
		if !errors.Is(err, ErrInvalidOrderID) {
			t.Fatalf("expected ErrInvalidOrderID, got %v", err)
		}
	})

	t.Run("invalid method", func(t *testing.T) {
		uc, _ := newPaymentUseCase(t)
		_, err := uc.RecordPayment(context.Background(), 7, entities.PaymentDraft{Amount: 1, Method: "cheque"})
		if !errors.Is(err, ErrInvalidPaymentMethod) {
			t.Fatalf("expected ErrInvalidPaymentMethod, got %v", err)
		}
	})

	t.Run("over the pending balance", func(t *testing.T) {
		uc, m := newPaymentUseCase(t)
		gomock.InOrder(
			m.guard.EXPECT().Acquire(gomock.Any(), int64(7), "payment").Return("tok", nil),
			m.orders.EXPECT().GetByID(gomock.Any(), int64(7)).Return(entities.Order{ID: 7, TotalPrice: 50000, AmountPaid: 20000}, nil),
			m.guard.EXPECT().Release(gomock.Any(), int64(7), "tok").Return(nil),
		)

		_, err := uc.RecordPayment(context.Background(), 7, entities.PaymentDraft{Amount: 30001, Method: entities.PaymentEfectivo})
		var ae *entities.AmountError
		if !errors.As(err, &ae) {
			t.Fatalf("expected AmountError, got %v", err)
		}
		if ae.Min != 1 || ae.Max != 30000 {
			t.Fatalf("unexpected range %d..%d", ae.Min, ae.Max)
		}
	})

	t.Run("zero amount", func(t *testing.T) {
		uc, m := newPaymentUseCase(t)
		uc.deps.Guard = nil
		m.orders.EXPECT().GetByID(gomock.Any(), int64(7)).Return(entities.Order{ID: 7, TotalPrice: 50000}, nil)

		_, err := uc.RecordPayment(context.Background(), 7, entities.PaymentDraft{Amount: 0, Method: entities.PaymentEfectivo})
		if !errors.Is(err, entities.ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount, got %v", err)
		}
	})

	t.Run("order load failure", func(t *testing.T) {
		uc, m := newPaymentUseCase(t)
		uc.deps.Guard = nil
		m.orders.EXPECT().GetByID(gomock.Any(), int64(7)).Return(entities.Order{}, &entities.BackendError{Kind: entities.ErrPersistence})

		_, err := uc.RecordPayment(context.Background(), 7, entities.PaymentDraft{Amount: 10, Method: entities.PaymentEfectivo})
		if !errors.Is(err, entities.ErrPersistence) {
			t.Fatalf("expected ErrPersistence, got %v", err)
		}
	})

	t.Run("operation in flight skips the balance read", func(t *testing.T) {
		uc, m := newPaymentUseCase(t)
		m.guard.EXPECT().Acquire(gomock.Any(), int64(7), "payment").Return("", entities.ErrOperationInFlight)

		_, err := uc.RecordPayment(context.Background(), 7, entities.PaymentDraft{Amount: 10, Method: entities.PaymentEfectivo})
		if !errors.Is(err, entities.ErrOperationInFlight) {
			t.Fatalf("expected ErrOperationInFlight, got %v", err)
		}
	})
}

func TestPaymentUseCase_RecordPayment(t *testing.T) {
	t.Run("cash payment with suggested concept and re-read", func(t *testing.T) {
		uc, m := newPaymentUseCase(t)

		gomock.InOrder(
			m.guard.EXPECT().Acquire(gomock.Any(), int64(7), "payment").Return("tok", nil),
			m.orders.EXPECT().GetByID(gomock.Any(), int64(7)).Return(entities.Order{ID: 7, TotalPrice: 150000, AmountPaid: 50000}, nil),
			m.payments.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p entities.Payment) (entities.Payment, error) {
				if p.Concept != entities.ConceptPagoFinal {
					t.Fatalf("expected %q, got %q", entities.ConceptPagoFinal, p.Concept)
				}
				if p.Reference != "" {
					t.Fatalf("cash payment must not carry a reference")
				}
				p.ID = 99
				return p, nil
			}),
			m.guard.EXPECT().Release(gomock.Any(), int64(7), "tok").Return(nil),
			m.orders.EXPECT().GetByID(gomock.Any(), int64(7)).Return(entities.Order{ID: 7, TotalPrice: 150000, AmountPaid: 150000}, nil),
		)
		m.events.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)
		m.metrics.EXPECT().RecordPayment(gomock.Any(), entities.PaymentEfectivo, int64(100000)).Return(nil)

		receipt, err := uc.RecordPayment(context.Background(), 7, entities.PaymentDraft{Amount: 100000, Method: entities.PaymentEfectivo})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if receipt.Payment.ID != 99 {
			t.Fatalf("expected payment 99, got %d", receipt.Payment.ID)
		}
		if receipt.Summary == nil || !receipt.Summary.FullyPaid {
			t.Fatalf("expected fully paid summary, got %+v", receipt.Summary)
		}
	})

	t.Run("user concept overrides suggestion", func(t *testing.T) {
		uc, m := newPaymentUseCase(t)
		uc.deps.Guard = nil
		uc.deps.Events = nil
		uc.deps.Metrics = nil

		m.orders.EXPECT().GetByID(gomock.Any(), int64(7)).Return(entities.Order{ID: 7, TotalPrice: 1000}, nil).Times(2)
		m.payments.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p entities.Payment) (entities.Payment, error) {
			if p.Concept != "Seña bordado" {
				t.Fatalf("expected user concept, got %q", p.Concept)
			}
			return p, nil
		})

		if _, err := uc.RecordPayment(context.Background(), 7, entities.PaymentDraft{Amount: 100, Method: entities.PaymentTransferencia, Concept: "Seña bordado"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("card payment charges the gateway", func(t *testing.T) {
		uc, m := newPaymentUseCase(t)
		uc.deps.Guard = nil

		m.orders.EXPECT().GetByID(gomock.Any(), int64(7)).Return(entities.Order{ID: 7, TotalPrice: 1000}, nil).Times(2)
		m.gateway.EXPECT().Charge(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c entities.CardCharge) (entities.CardChargeResult, error) {
			if c.Amount != 400 || c.OrderID != 7 {
				t.Fatalf("unexpected charge %+v", c)
			}
			return entities.CardChargeResult{ProviderID: "mp-1", Status: "approved"}, nil
		})
		m.payments.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p entities.Payment) (entities.Payment, error) {
			if p.Reference != "mp-1" {
				t.Fatalf("expected provider reference, got %q", p.Reference)
			}
			return p, nil
		})
		m.events.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)
		m.metrics.EXPECT().RecordPayment(gomock.Any(), entities.PaymentTarjeta, int64(400)).Return(nil)

		_, err := uc.RecordPayment(context.Background(), 7, entities.PaymentDraft{
			Amount:      400,
			Method:      entities.PaymentTarjeta,
			CardPayload: json.RawMessage(`{"token":"tok"}`),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("approved card that fails to record is not retryable", func(t *testing.T) {
		uc, m := newPaymentUseCase(t)

		gomock.InOrder(
			m.guard.EXPECT().Acquire(gomock.Any(), int64(7), "payment").Return("tok", nil),
			m.orders.EXPECT().GetByID(gomock.Any(), int64(7)).Return(entities.Order{ID: 7, TotalPrice: 1000}, nil),
			m.gateway.EXPECT().Charge(gomock.Any(), gomock.Any()).Return(entities.CardChargeResult{ProviderID: "mp-123", Status: "approved"}, nil),
			m.payments.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Payment{}, &entities.BackendError{Kind: entities.ErrPersistence, StatusCode: 503}),
			m.guard.EXPECT().Release(gomock.Any(), int64(7), "tok").Return(nil),
		)

		_, err := uc.RecordPayment(context.Background(), 7, entities.PaymentDraft{Amount: 400, Method: entities.PaymentTarjeta})
		var notRecorded *CardChargedNotRecordedError
		if !errors.As(err, &notRecorded) {
			t.Fatalf("expected CardChargedNotRecordedError, got %v", err)
		}
		if notRecorded.ProviderID != "mp-123" || notRecorded.Amount != 400 || notRecorded.OrderID != 7 {
			t.Fatalf("unexpected error fields %+v", notRecorded)
		}
		if errors.Is(err, entities.ErrPersistence) {
			t.Fatalf("charged payment must not be reported as a retryable persistence failure")
		}
		if !errors.Is(notRecorded.Cause, entities.ErrPersistence) {
			t.Fatalf("expected backend cause to be kept, got %v", notRecorded.Cause)
		}
	})

	t.Run("declined card records nothing", func(t *testing.T) {
		uc, m := newPaymentUseCase(t)
		uc.deps.Guard = nil

		m.orders.EXPECT().GetByID(gomock.Any(), int64(7)).Return(entities.Order{ID: 7, TotalPrice: 1000}, nil)
		m.gateway.EXPECT().Charge(gomock.Any(), gomock.Any()).Return(entities.CardChargeResult{ProviderID: "mp-2", Status: "rejected"}, nil)

		_, err := uc.RecordPayment(context.Background(), 7, entities.PaymentDraft{Amount: 400, Method: entities.PaymentTarjeta})
		if !errors.Is(err, ErrCardChargeDeclined) {
			t.Fatalf("expected ErrCardChargeDeclined, got %v", err)
		}
	})

	t.Run("card without gateway", func(t *testing.T) {
		uc, m := newPaymentUseCase(t)
		uc.deps.Guard = nil
		uc.deps.Gateway = nil

		m.orders.EXPECT().GetByID(gomock.Any(), int64(7)).Return(entities.Order{ID: 7, TotalPrice: 1000}, nil)

		_, err := uc.RecordPayment(context.Background(), 7, entities.PaymentDraft{Amount: 400, Method: entities.PaymentTarjeta})
		if !errors.Is(err, ErrPaymentGatewayNotConfigured) {
			t.Fatalf("expected ErrPaymentGatewayNotConfigured, got %v", err)
		}
	})

	t.Run("re-read failure still returns the payment", func(t *testing.T) {
		uc, m := newPaymentUseCase(t)
		uc.deps.Guard = nil
		uc.deps.Events = nil
		uc.deps.Metrics = nil

		gomock.InOrder(
			m.orders.EXPECT().GetByID(gomock.Any(), int64(7)).Return(entities.Order{ID: 7, TotalPrice: 1000}, nil),
			m.payments.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Payment{ID: 5, OrderID: 7, Amount: 100}, nil),
			m.orders.EXPECT().GetByID(gomock.Any(), int64(7)).Return(entities.Order{}, &entities.BackendError{Kind: entities.ErrPersistence}),
		)

		receipt, err := uc.RecordPayment(context.Background(), 7, entities.PaymentDraft{Amount: 100, Method: entities.PaymentEfectivo})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if receipt.Order != nil || receipt.Payment.ID != 5 {
			t.Fatalf("unexpected receipt %+v", receipt)
		}
	})

	t.Run("backend rejects the payment", func(t *testing.T) {
		uc, m := newPaymentUseCase(t)
		m.guard.EXPECT().Acquire(gomock.Any(), int64(7), "payment").Return("tok", nil)
		m.orders.EXPECT().GetByID(gomock.Any(), int64(7)).Return(entities.Order{ID: 7, TotalPrice: 1000}, nil)
		m.payments.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Payment{}, &entities.BackendError{Kind: entities.ErrValidationRejected, StatusCode: 400})
		m.guard.EXPECT().Release(gomock.Any(), int64(7), "tok").Return(nil)

		_, err := uc.RecordPayment(context.Background(), 7, entities.PaymentDraft{Amount: 100, Method: entities.PaymentEfectivo})
		if !errors.Is(err, entities.ErrValidationRejected) {
			t.Fatalf("expected ErrValidationRejected, got %v", err)
		}
	})
}

func TestPaymentUseCase_SuggestConcept(t *testing.T) {
	cases := []struct {
		name      string
		order     entities.Order
		amount    int64
		want      string
		wantValid bool
	}{
		{"final", entities.Order{ID: 1, TotalPrice: 150000, AmountPaid: 50000}, 100000, entities.ConceptPagoFinal, true},
		{"first", entities.Order{ID: 1, TotalPrice: 150000}, 50000, entities.ConceptAdelantoInicial, true},
		{"partial", entities.Order{ID: 1, TotalPrice: 150000, AmountPaid: 50000}, 10000, entities.ConceptPagoParcial, true},
		{"zero amount still labelled", entities.Order{ID: 1, TotalPrice: 150000}, 0, entities.ConceptAdelantoInicial, false},
		{"above balance still labelled", entities.Order{ID: 1, TotalPrice: 150000, AmountPaid: 50000}, 200000, entities.ConceptPagoFinal, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, m := newPaymentUseCase(t)
			m.orders.EXPECT().GetByID(gomock.Any(), int64(1)).Return(tc.order, nil)

			got, err := uc.SuggestConcept(context.Background(), 1, tc.amount)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Concept != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got.Concept)
			}
			if got.Valid != tc.wantValid {
				t.Fatalf("expected valid=%v, got %+v", tc.wantValid, got)
			}
			if !got.Valid && got.Reason == "" {
				t.Fatalf("expected a reason for an invalid amount")
			}
			if got.MaxAmount != tc.order.DisplayPendingBalance() {
				t.Fatalf("expected max %d, got %d", tc.order.DisplayPendingBalance(), got.MaxAmount)
			}
		})
	}
}

func TestPaymentUseCase_ListByOrderID(t *testing.T) {
	uc, m := newPaymentUseCase(t)
	t1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m.payments.EXPECT().ListByOrderID(gomock.Any(), int64(7)).Return([]entities.Payment{
		{ID: 2, CreatedAt: t1.Add(time.Hour)},
		{ID: 1, CreatedAt: t1},
	}, nil)

	got, err := uc.ListByOrderID(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0].ID != 1 || got[1].ID != 2 {
		t.Fatalf("expected chronological order, got %+v", got)
	}
}

func TestPaymentUseCase_ExportCSV(t *testing.T) {
	t.Run("filters locally and writes rows", func(t *testing.T) {
		uc, m := newPaymentUseCase(t)
		day := time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)
		filter := entities.PaymentFilter{Method: entities.PaymentEfectivo}
		m.payments.EXPECT().List(gomock.Any(), filter).Return([]entities.Payment{
			{ID: 1, OrderID: 7, Amount: 500, Method: entities.PaymentEfectivo, Concept: "Adelanto inicial", CreatedAt: day},
			{ID: 2, OrderID: 7, Amount: 300, Method: entities.PaymentTarjeta, Concept: "Pago final", CreatedAt: day},
		}, nil)

		var buf bytes.Buffer
		n, err := uc.ExportCSV(context.Background(), filter, &buf)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != 1 {
			t.Fatalf("expected 1 row, got %d", n)
		}
		records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
		if err != nil {
			t.Fatalf("invalid csv: %v", err)
		}
		if len(records) != 2 || records[1][0] != "1" || records[1][2] != "2024-03-10 09:30" {
			t.Fatalf("unexpected records %v", records)
		}
	})

	t.Run("invalid method", func(t *testing.T) {
		uc, _ := newPaymentUseCase(t)
		if _, err := uc.ExportCSV(context.Background(), entities.PaymentFilter{Method: "cheque"}, &bytes.Buffer{}); !errors.Is(err, ErrInvalidPaymentMethod) {
			t.Fatalf("expected ErrInvalidPaymentMethod, got %v", err)
		}
	})
}
