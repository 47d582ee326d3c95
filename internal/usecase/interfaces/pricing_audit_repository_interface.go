package interfaces

import (
	"bordados_admin/internal/domain/entities"
	"context"
)

// IPricingAuditRepository keeps the discount applied to each order at
// creation time. GetByOrderID returns entities.ErrNotFound when nothing was
// recorded.
type IPricingAuditRepository interface {
	Save(ctx context.Context, r entities.PricingRecord) error
	GetByOrderID(ctx context.Context, orderID int64) (entities.PricingRecord, error)
}
