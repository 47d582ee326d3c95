package interfaces

import (
	"bordados_admin/internal/domain/entities"
	"context"
)

// IPaymentRepository abstracts the backend's pagos resource.
type IPaymentRepository interface {
	Create(ctx context.Context, p entities.Payment) (entities.Payment, error)
	ListByOrderID(ctx context.Context, orderID int64) ([]entities.Payment, error)
	List(ctx context.Context, filter entities.PaymentFilter) ([]entities.Payment, error)
}
