package usecase

import (
	"bordados_admin/internal/domain/entities"
	"bordados_admin/internal/usecase/interfaces"
	"context"
	"errors"

	"go.uber.org/zap"
)

// Collaborators groups the ports used by the order and payment use cases.
//
// Orders and Payments are required. Clients is required for order creation
// and pricing previews. The rest are optional and skipped when nil.
type Collaborators struct {
	Orders   interfaces.IOrderRepository
	Payments interfaces.IPaymentRepository
	Clients  interfaces.IClientRepository
	Audit    interfaces.IPricingAuditRepository
	Guard    interfaces.IOperationGuard
	Events   interfaces.IEventPublisher
	Metrics  interfaces.IMetricsRecorder
	Gateway  interfaces.IPaymentGateway
	Logger   *zap.SugaredLogger
}

func (c Collaborators) logger() *zap.SugaredLogger {
	if c.Logger == nil {
		return zap.NewNop().Sugar()
	}
	return c.Logger
}

// withGuard runs fn while holding the per-order operation guard.
func (c Collaborators) withGuard(ctx context.Context, log *zap.SugaredLogger, orderID int64, op string, fn func() error) error {
	if c.Guard == nil {
		return fn()
	}
	token, err := c.Guard.Acquire(ctx, orderID, op)
	if err != nil {
		log.Infof("[guard] acquire failed order_id=%d op=%s err=%v", orderID, op, err)
		return err
	}
	defer func() {
		// Release even when the caller's context is already cancelled.
		if rErr := c.Guard.Release(context.WithoutCancel(ctx), orderID, token); rErr != nil {
			log.Warnf("[guard] release failed order_id=%d op=%s err=%v", orderID, op, rErr)
		}
	}()
	return fn()
}

// publish reports confirmed writes. Failures are logged only: the backend
// already holds the change.
func (c Collaborators) publish(ctx context.Context, log *zap.SugaredLogger, event entities.OrderEvent) {
	if c.Events == nil {
		return
	}
	if err := c.Events.Publish(ctx, event); err != nil {
		log.Warnf("[events] publish failed order_id=%d type=%s err=%v", event.OrderID, event.Type, err)
	}
}

func (c Collaborators) recordTransition(ctx context.Context, log *zap.SugaredLogger, from, to entities.OrderState) {
	if c.Metrics == nil {
		return
	}
	if err := c.Metrics.RecordTransition(ctx, from, to); err != nil {
		log.Warnf("[metrics] transition failed from=%s to=%s err=%v", from, to, err)
	}
}

func (c Collaborators) recordPayment(ctx context.Context, log *zap.SugaredLogger, method entities.PaymentMethod, amount int64) {
	if c.Metrics == nil {
		return
	}
	if err := c.Metrics.RecordPayment(ctx, method, amount); err != nil {
		log.Warnf("[metrics] payment failed method=%s err=%v", method, err)
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, entities.ErrNotFound)
}
