package interfaces

import (
	"bordados_admin/internal/domain/entities"
	"context"
)

type IMetricsRecorder interface {
	RecordPayment(ctx context.Context, method entities.PaymentMethod, amount int64) error
	RecordTransition(ctx context.Context, from, to entities.OrderState) error
}
