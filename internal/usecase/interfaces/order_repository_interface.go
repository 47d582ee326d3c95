package interfaces

import (
	"bordados_admin/internal/domain/entities"
	"context"
	"time"
)

// IOrderRepository abstracts the backend's pedidos resource.
//
// Implementations classify failures as entities.ErrNotFound,
// entities.ErrValidationRejected or entities.ErrPersistence and hold no
// business rules.
type IOrderRepository interface {
	GetByID(ctx context.Context, id int64) (entities.Order, error)
	List(ctx context.Context, filter entities.OrderFilter) ([]entities.Order, error)
	Create(ctx context.Context, draft entities.OrderDraft, pricing entities.PricingPreview) (entities.Order, error)
	// UpdateState persists a new state. deliveredAt is sent only when non-nil.
	UpdateState(ctx context.Context, id int64, state entities.OrderState, deliveredAt *time.Time) (entities.Order, error)
}
