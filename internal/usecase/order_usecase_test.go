package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"bordados_admin/internal/domain/entities"
	mock_interfaces "bordados_admin/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"
)

type orderMocks struct {
	orders   *mock_interfaces.MockIOrderRepository
	payments *mock_interfaces.MockIPaymentRepository
	clients  *mock_interfaces.MockIClientRepository
	audit    *mock_interfaces.MockIPricingAuditRepository
	guard    *mock_interfaces.MockIOperationGuard
	events   *mock_interfaces.MockIEventPublisher
	metrics  *mock_interfaces.MockIMetricsRecorder
}

func newOrderUseCase(t *testing.T) (*OrderUseCase, orderMocks) {
	ctrl := gomock.NewController(t)
	m := orderMocks{
		orders:   mock_interfaces.NewMockIOrderRepository(ctrl),
		payments: mock_interfaces.NewMockIPaymentRepository(ctrl),
		clients:  mock_interfaces.NewMockIClientRepository(ctrl),
		audit:    mock_interfaces.NewMockIPricingAuditRepository(ctrl),
		guard:    mock_interfaces.NewMockIOperationGuard(ctrl),
		events:   mock_interfaces.NewMockIEventPublisher(ctrl),
		metrics:  mock_interfaces.NewMockIMetricsRecorder(ctrl),
	}
	uc := NewOrderUseCase(Collaborators{
		Orders:   m.orders,
		Payments: m.payments,
		Clients:  m.clients,
		Audit:    m.audit,
		Guard:    m.guard,
		Events:   m.events,
		Metrics:  m.metrics,
		Logger:   zaptest.NewLogger(t).Sugar(),
	})
	return uc, m
}

func TestOrderUseCase_RequestTransition(t *testing.T) {
	t.Run("illegal transition never reaches persistence", func(t *testing.T) {
		uc, _ := newOrderUseCase(t)
		order := entities.Order{ID: 7, State: entities.StateEntregado}

		_, err := uc.RequestTransition(context.Background(), order, entities.StateEnProceso)
		if !errors.Is(err, entities.ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("cancel from en_proceso rejected", func(t *testing.T) {
		uc, _ := newOrderUseCase(t)
		_, err := uc.RequestTransition(context.Background(), entities.Order{ID: 7, State: entities.StateEnProceso}, entities.StateCancelado)
		if !errors.Is(err, entities.ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		uc, _ := newOrderUseCase(t)
		_, err := uc.RequestTransition(context.Background(), entities.Order{State: entities.StateRecibido}, entities.StateEnDiseno)
		if !errors.Is(err, ErrInvalidOrderID) {
			t.Fatalf("expected ErrInvalidOrderID, got %v", err)
		}
	})

	t.Run("legal transition persists and publishes", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		order := entities.Order{ID: 7, State: entities.StateAprobado}

		gomock.InOrder(
			m.guard.EXPECT().Acquire(gomock.Any(), int64(7), "transition").Return("tok", nil),
			m.orders.EXPECT().UpdateState(gomock.Any(), int64(7), entities.StateEnProceso, gomock.Nil()).
				Return(entities.Order{ID: 7, State: entities.StateEnProceso}, nil),
			m.guard.EXPECT().Release(gomock.Any(), int64(7), "tok").Return(nil),
		)
		m.events.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e entities.OrderEvent) error {
			if e.Type != entities.EventOrderStateChanged || e.OrderID != 7 {
				t.Fatalf("unexpected event %+v", e)
			}
			return nil
		})
		m.metrics.EXPECT().RecordTransition(gomock.Any(), entities.StateAprobado, entities.StateEnProceso).Return(nil)

		updated, err := uc.RequestTransition(context.Background(), order, entities.StateEnProceso)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.State != entities.StateEnProceso {
			t.Fatalf("expected en_proceso, got %s", updated.State)
		}
	})

	t.Run("delivery stamps the date", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		fixed := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)
		uc.now = func() time.Time { return fixed }

		m.guard.EXPECT().Acquire(gomock.Any(), int64(3), gomock.Any()).Return("tok", nil)
		m.guard.EXPECT().Release(gomock.Any(), int64(3), "tok").Return(nil)
		m.orders.EXPECT().UpdateState(gomock.Any(), int64(3), entities.StateEntregado, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int64, _ entities.OrderState, at *time.Time) (entities.Order, error) {
				if at == nil || !at.Equal(fixed) {
					t.Fatalf("expected delivery date %v, got %v", fixed, at)
				}
				return entities.Order{ID: 3, State: entities.StateEntregado, DeliveredAt: at}, nil
			})
		m.events.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)
		m.metrics.EXPECT().RecordTransition(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		if _, err := uc.RequestTransition(context.Background(), entities.Order{ID: 3, State: entities.StateTerminado}, entities.StateEntregado); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("persistence failure surfaces and skips events", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		backendErr := &entities.BackendError{Kind: entities.ErrPersistence, Detail: "timeout"}

		m.guard.EXPECT().Acquire(gomock.Any(), int64(7), gomock.Any()).Return("tok", nil)
		m.guard.EXPECT().Release(gomock.Any(), int64(7), "tok").Return(nil)
		m.orders.EXPECT().UpdateState(gomock.Any(), int64(7), entities.StateEnDiseno, gomock.Nil()).Return(entities.Order{}, backendErr)

		_, err := uc.RequestTransition(context.Background(), entities.Order{ID: 7, State: entities.StateRecibido}, entities.StateEnDiseno)
		if !errors.Is(err, entities.ErrPersistence) {
			t.Fatalf("expected ErrPersistence, got %v", err)
		}
	})

	t.Run("operation in flight", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		m.guard.EXPECT().Acquire(gomock.Any(), int64(7), gomock.Any()).Return("", entities.ErrOperationInFlight)

		_, err := uc.RequestTransition(context.Background(), entities.Order{ID: 7, State: entities.StateRecibido}, entities.StateEnDiseno)
		if !errors.Is(err, entities.ErrOperationInFlight) {
			t.Fatalf("expected ErrOperationInFlight, got %v", err)
		}
	})

	t.Run("unknown state uses recibido row", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		m.guard.EXPECT().Acquire(gomock.Any(), int64(9), gomock.Any()).Return("tok", nil)
		m.guard.EXPECT().Release(gomock.Any(), int64(9), "tok").Return(nil)
		m.orders.EXPECT().UpdateState(gomock.Any(), int64(9), entities.StateEnDiseno, gomock.Nil()).
			Return(entities.Order{ID: 9, State: entities.StateEnDiseno}, nil)
		m.events.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("queue down"))
		m.metrics.EXPECT().RecordTransition(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		if _, err := uc.RequestTransition(context.Background(), entities.Order{ID: 9, State: "archivado"}, entities.StateEnDiseno); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestOrderUseCase_TransitionByID(t *testing.T) {
	t.Run("reads fresh and re-reads after write", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		uc.deps.Guard = nil
		uc.deps.Events = nil
		uc.deps.Metrics = nil

		gomock.InOrder(
			m.orders.EXPECT().GetByID(gomock.Any(), int64(5)).Return(entities.Order{ID: 5, State: entities.StateCancelado}, nil),
			m.orders.EXPECT().UpdateState(gomock.Any(), int64(5), entities.StateRecibido, gomock.Nil()).
				Return(entities.Order{ID: 5, State: entities.StateRecibido}, nil),
			m.orders.EXPECT().GetByID(gomock.Any(), int64(5)).
				Return(entities.Order{ID: 5, State: entities.StateRecibido, TotalPrice: 1000}, nil),
		)
		m.payments.EXPECT().ListByOrderID(gomock.Any(), int64(5)).Return(nil, nil)
		m.audit.EXPECT().GetByOrderID(gomock.Any(), int64(5)).Return(entities.PricingRecord{}, entities.ErrNotFound)

		detail, err := uc.TransitionByID(context.Background(), 5, entities.StateRecibido)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if detail.Order.State != entities.StateRecibido {
			t.Fatalf("expected recibido, got %s", detail.Order.State)
		}
		if len(detail.NextStates) != 2 || detail.NextStates[0].State != entities.StateEnDiseno {
			t.Fatalf("unexpected next states %+v", detail.NextStates)
		}
		if detail.Payments == nil {
			t.Fatalf("expected empty payments slice")
		}
	})

	t.Run("reads and validates while holding the guard", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		uc.deps.Events = nil
		uc.deps.Metrics = nil

		gomock.InOrder(
			m.guard.EXPECT().Acquire(gomock.Any(), int64(5), "transition").Return("tok", nil),
			m.orders.EXPECT().GetByID(gomock.Any(), int64(5)).Return(entities.Order{ID: 5, State: entities.StateRecibido}, nil),
			m.orders.EXPECT().UpdateState(gomock.Any(), int64(5), entities.StateEnDiseno, gomock.Nil()).
				Return(entities.Order{ID: 5, State: entities.StateEnDiseno}, nil),
			m.guard.EXPECT().Release(gomock.Any(), int64(5), "tok").Return(nil),
			m.orders.EXPECT().GetByID(gomock.Any(), int64(5)).Return(entities.Order{ID: 5, State: entities.StateEnDiseno}, nil),
		)
		m.payments.EXPECT().ListByOrderID(gomock.Any(), int64(5)).Return(nil, nil)
		m.audit.EXPECT().GetByOrderID(gomock.Any(), int64(5)).Return(entities.PricingRecord{}, entities.ErrNotFound)

		detail, err := uc.TransitionByID(context.Background(), 5, entities.StateEnDiseno)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if detail.Order.State != entities.StateEnDiseno {
			t.Fatalf("expected en_diseno, got %s", detail.Order.State)
		}
	})

	t.Run("illegal move read under the guard releases it", func(t *testing.T) {
		uc, m := newOrderUseCase(t)

		gomock.InOrder(
			m.guard.EXPECT().Acquire(gomock.Any(), int64(5), "transition").Return("tok", nil),
			m.orders.EXPECT().GetByID(gomock.Any(), int64(5)).Return(entities.Order{ID: 5, State: entities.StateEntregado}, nil),
			m.guard.EXPECT().Release(gomock.Any(), int64(5), "tok").Return(nil),
		)

		_, err := uc.TransitionByID(context.Background(), 5, entities.StateCancelado)
		if !errors.Is(err, entities.ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("operation in flight skips the read", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		m.guard.EXPECT().Acquire(gomock.Any(), int64(5), "transition").Return("", entities.ErrOperationInFlight)

		_, err := uc.TransitionByID(context.Background(), 5, entities.StateEnDiseno)
		if !errors.Is(err, entities.ErrOperationInFlight) {
			t.Fatalf("expected ErrOperationInFlight, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		uc.deps.Guard = nil
		m.orders.EXPECT().GetByID(gomock.Any(), int64(5)).Return(entities.Order{}, &entities.BackendError{Kind: entities.ErrNotFound, StatusCode: 404})

		_, err := uc.TransitionByID(context.Background(), 5, entities.StateEnDiseno)
		if !errors.Is(err, entities.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestOrderUseCase_GetDetail(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		uc, _ := newOrderUseCase(t)
		if _, err := uc.GetDetail(context.Background(), 0); !errors.Is(err, ErrInvalidOrderID) {
			t.Fatalf("expected ErrInvalidOrderID, got %v", err)
		}
	})

	t.Run("assembles summary, payments and pricing", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		order := entities.Order{ID: 4, State: entities.StateTerminado, TotalPrice: 150000, AmountPaid: 50000}
		rec := entities.PricingRecord{OrderID: 4, DiscountPercent: decimal.NewFromInt(10)}

		m.orders.EXPECT().GetByID(gomock.Any(), int64(4)).Return(order, nil)
		m.payments.EXPECT().ListByOrderID(gomock.Any(), int64(4)).Return([]entities.Payment{{ID: 1, Amount: 50000}}, nil)
		m.audit.EXPECT().GetByOrderID(gomock.Any(), int64(4)).Return(rec, nil)

		detail, err := uc.GetDetail(context.Background(), 4)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if detail.Summary.PendingBalance != 100000 || detail.Summary.FullyPaid {
			t.Fatalf("unexpected summary %+v", detail.Summary)
		}
		if detail.Pricing == nil || !detail.Pricing.DiscountPercent.Equal(decimal.NewFromInt(10)) {
			t.Fatalf("unexpected pricing %+v", detail.Pricing)
		}
		if !detail.StateKnown {
			t.Fatalf("expected known state")
		}
	})

	t.Run("audit failure does not fail detail", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		m.orders.EXPECT().GetByID(gomock.Any(), int64(4)).Return(entities.Order{ID: 4, State: entities.StateRecibido}, nil)
		m.payments.EXPECT().ListByOrderID(gomock.Any(), int64(4)).Return(nil, nil)
		m.audit.EXPECT().GetByOrderID(gomock.Any(), int64(4)).Return(entities.PricingRecord{}, errors.New("dynamo down"))

		detail, err := uc.GetDetail(context.Background(), 4)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if detail.Pricing != nil {
			t.Fatalf("expected nil pricing, got %+v", detail.Pricing)
		}
	})

	t.Run("payments failure", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		m.orders.EXPECT().GetByID(gomock.Any(), int64(4)).Return(entities.Order{ID: 4}, nil)
		m.payments.EXPECT().ListByOrderID(gomock.Any(), int64(4)).Return(nil, &entities.BackendError{Kind: entities.ErrPersistence})

		if _, err := uc.GetDetail(context.Background(), 4); !errors.Is(err, entities.ErrPersistence) {
			t.Fatalf("expected ErrPersistence, got %v", err)
		}
	})
}

func TestOrderUseCase_List(t *testing.T) {
	t.Run("unknown state filter", func(t *testing.T) {
		uc, _ := newOrderUseCase(t)
		if _, err := uc.List(context.Background(), entities.OrderFilter{State: "archivado"}); !errors.Is(err, ErrUnknownState) {
			t.Fatalf("expected ErrUnknownState, got %v", err)
		}
	})

	t.Run("passes filter through", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		f := entities.OrderFilter{State: entities.StateAprobado, ClientID: 2}
		m.orders.EXPECT().List(gomock.Any(), f).Return(nil, nil)

		got, err := uc.List(context.Background(), f)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got == nil || len(got) != 0 {
			t.Fatalf("expected empty non-nil slice, got %#v", got)
		}
	})
}

func TestOrderUseCase_StateCatalog(t *testing.T) {
	uc, _ := newOrderUseCase(t)
	catalog := uc.StateCatalog()
	if len(catalog) != len(entities.AllStates) {
		t.Fatalf("expected %d states, got %d", len(entities.AllStates), len(catalog))
	}
	for _, e := range catalog {
		if e.State == entities.StateEntregado && (len(e.Next) != 0 || !e.Terminal) {
			t.Fatalf("entregado must be terminal, got %+v", e)
		}
	}
}

func TestOrderUseCase_PreviewPricing(t *testing.T) {
	t.Run("applies client discount", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		m.clients.EXPECT().GetByID(gomock.Any(), int64(3)).Return(entities.Client{ID: 3, DiscountPercent: decimal.NewFromInt(15)}, nil)

		p, err := uc.PreviewPricing(context.Background(), 3, 100000)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.DiscountAmount != 15000 || p.FinalTotal != 85000 {
			t.Fatalf("unexpected preview %+v", p)
		}
	})

	t.Run("invalid inputs", func(t *testing.T) {
		uc, _ := newOrderUseCase(t)
		if _, err := uc.PreviewPricing(context.Background(), 0, 100); !errors.Is(err, ErrInvalidClientID) {
			t.Fatalf("expected ErrInvalidClientID, got %v", err)
		}
		if _, err := uc.PreviewPricing(context.Background(), 3, 0); !errors.Is(err, entities.ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount, got %v", err)
		}
	})
}

func TestOrderUseCase_CreateOrder(t *testing.T) {
	draft := entities.OrderDraft{
		ClientID:       3,
		PromisedDate:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EmbroideryType: entities.EmbroideryComputarizado,
		Description:    " Logo en 20 camisetas ",
		Subtotal:       100000,
		AdvancePayment: 30000,
	}

	t.Run("discount applied once and pricing audited", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		m.clients.EXPECT().GetByID(gomock.Any(), int64(3)).Return(entities.Client{ID: 3, DiscountPercent: decimal.NewFromInt(15)}, nil)
		m.orders.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, d entities.OrderDraft, p entities.PricingPreview) (entities.Order, error) {
				if d.Description != "Logo en 20 camisetas" {
					t.Fatalf("expected trimmed description, got %q", d.Description)
				}
				if p.FinalTotal != 85000 || p.DiscountAmount != 15000 {
					t.Fatalf("unexpected pricing %+v", p)
				}
				return entities.Order{ID: 11, ClientID: 3, State: entities.StateRecibido, TotalPrice: 85000, AmountPaid: 30000}, nil
			})
		m.audit.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r entities.PricingRecord) error {
			if r.OrderID != 11 || r.FinalTotal != 85000 {
				t.Fatalf("unexpected record %+v", r)
			}
			return nil
		})
		m.events.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)
		m.orders.EXPECT().GetByID(gomock.Any(), int64(11)).Return(entities.Order{ID: 11, State: entities.StateRecibido, TotalPrice: 85000, AmountPaid: 30000}, nil)
		m.payments.EXPECT().ListByOrderID(gomock.Any(), int64(11)).Return(nil, nil)
		m.audit.EXPECT().GetByOrderID(gomock.Any(), int64(11)).Return(entities.PricingRecord{OrderID: 11, FinalTotal: 85000}, nil)

		detail, err := uc.CreateOrder(context.Background(), draft)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if detail.Order.State != entities.StateRecibido || detail.Summary.PendingBalance != 55000 {
			t.Fatalf("unexpected detail %+v", detail)
		}
	})

	t.Run("advance above discounted total", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		d := draft
		d.AdvancePayment = 90000
		m.clients.EXPECT().GetByID(gomock.Any(), int64(3)).Return(entities.Client{ID: 3, DiscountPercent: decimal.NewFromInt(15)}, nil)

		_, err := uc.CreateOrder(context.Background(), d)
		var ae *entities.AmountError
		if !errors.As(err, &ae) || ae.Max != 85000 {
			t.Fatalf("expected AmountError with max 85000, got %v", err)
		}
	})

	t.Run("invalid draft", func(t *testing.T) {
		uc, _ := newOrderUseCase(t)
		d := draft
		d.EmbroideryType = "laser"
		if _, err := uc.CreateOrder(context.Background(), d); !errors.Is(err, ErrInvalidOrderDraft) {
			t.Fatalf("expected ErrInvalidOrderDraft, got %v", err)
		}
	})

	t.Run("backend rejection", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		m.clients.EXPECT().GetByID(gomock.Any(), int64(3)).Return(entities.Client{ID: 3}, nil)
		m.orders.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(entities.Order{}, &entities.BackendError{Kind: entities.ErrValidationRejected, StatusCode: 400})

		if _, err := uc.CreateOrder(context.Background(), draft); !errors.Is(err, entities.ErrValidationRejected) {
			t.Fatalf("expected ErrValidationRejected, got %v", err)
		}
	})
}
