package repository

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"bordados_admin/internal/domain/entities"
	"bordados_admin/internal/usecase/interfaces"
)

// OrderRestRepository maps entities.Order to the backend's /pedidos/ resource.
type OrderRestRepository struct {
	client *BackendClient
}

var _ interfaces.IOrderRepository = (*OrderRestRepository)(nil)

func NewOrderRestRepository(client *BackendClient) *OrderRestRepository {
	return &OrderRestRepository{client: client}
}

func (r *OrderRestRepository) GetByID(ctx context.Context, id int64) (entities.Order, error) {
	var dto pedidoDTO
	if err := r.client.get(ctx, pedidoPath(id), nil, &dto); err != nil {
		return entities.Order{}, err
	}
	return decodeOrder(dto)
}

func (r *OrderRestRepository) List(ctx context.Context, filter entities.OrderFilter) ([]entities.Order, error) {
	q := url.Values{}
	if filter.State != "" {
		q.Set("estado", string(filter.State))
	}
	if filter.ClientID > 0 {
		q.Set("cliente", strconv.FormatInt(filter.ClientID, 10))
	}

	var page listEnvelope[pedidoDTO]
	if err := r.client.get(ctx, "/pedidos/", q, &page); err != nil {
		return nil, err
	}
	out := make([]entities.Order, 0, len(page.Items))
	for _, dto := range page.Items {
		o, err := decodeOrder(dto)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

func (r *OrderRestRepository) Create(ctx context.Context, draft entities.OrderDraft, pricing entities.PricingPreview) (entities.Order, error) {
	var dto pedidoDTO
	if err := r.client.post(ctx, "/pedidos/", toPedidoCreate(draft, pricing), &dto); err != nil {
		return entities.Order{}, err
	}
	return decodeOrder(dto)
}

func (r *OrderRestRepository) UpdateState(ctx context.Context, id int64, state entities.OrderState, deliveredAt *time.Time) (entities.Order, error) {
	body := pedidoStateDTO{Estado: string(state)}
	if deliveredAt != nil {
		d := deliveredAt.Format(backendDateLayout)
		body.FechaEntregaReal = &d
	}
	var dto pedidoDTO
	if err := r.client.patch(ctx, pedidoPath(id), body, &dto); err != nil {
		return entities.Order{}, err
	}
	return decodeOrder(dto)
}

func pedidoPath(id int64) string {
	return fmt.Sprintf("/pedidos/%d/", id)
}

func decodeOrder(dto pedidoDTO) (entities.Order, error) {
	o, err := toOrder(dto)
	if err != nil {
		return entities.Order{}, &entities.BackendError{Kind: entities.ErrPersistence, Detail: err.Error()}
	}
	return o, nil
}
