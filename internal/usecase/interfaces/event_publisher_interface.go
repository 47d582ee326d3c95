package interfaces

import (
	"bordados_admin/internal/domain/entities"
	"context"
)

// IEventPublisher delivers domain events after the backend confirmed a write.
type IEventPublisher interface {
	Publish(ctx context.Context, event entities.OrderEvent) error
}
