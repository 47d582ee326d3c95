package messaging

import (
	"context"

	"bordados_admin/internal/domain/entities"
	"bordados_admin/internal/usecase/interfaces"

	"go.uber.org/zap"
)

// LogEventPublisher only logs events. Used when no broker is configured.
type LogEventPublisher struct {
	log *zap.SugaredLogger
}

var _ interfaces.IEventPublisher = (*LogEventPublisher)(nil)

func NewLogEventPublisher(log *zap.SugaredLogger) *LogEventPublisher {
	return &LogEventPublisher{log: log}
}

func (p *LogEventPublisher) Publish(_ context.Context, event entities.OrderEvent) error {
	p.log.Infow("[events] order event", "event_id", event.ID, "type", event.Type, "order_id", event.OrderID)
	return nil
}
