package repository

import (
	"context"
	"net/url"
	"strconv"

	"bordados_admin/internal/domain/entities"
	"bordados_admin/internal/usecase/interfaces"
)

// PaymentRestRepository maps entities.Payment to the backend's /pagos/ resource.
type PaymentRestRepository struct {
	client *BackendClient
}

var _ interfaces.IPaymentRepository = (*PaymentRestRepository)(nil)

func NewPaymentRestRepository(client *BackendClient) *PaymentRestRepository {
	return &PaymentRestRepository{client: client}
}

func (r *PaymentRestRepository) Create(ctx context.Context, p entities.Payment) (entities.Payment, error) {
	var dto pagoDTO
	if err := r.client.post(ctx, "/pagos/", toPagoDTO(p), &dto); err != nil {
		return entities.Payment{}, err
	}
	return toPayment(dto), nil
}

func (r *PaymentRestRepository) ListByOrderID(ctx context.Context, orderID int64) ([]entities.Payment, error) {
	return r.List(ctx, entities.PaymentFilter{OrderID: orderID})
}

func (r *PaymentRestRepository) List(ctx context.Context, filter entities.PaymentFilter) ([]entities.Payment, error) {
	q := url.Values{}
	if filter.OrderID > 0 {
		q.Set("pedido", strconv.FormatInt(filter.OrderID, 10))
	}
	if filter.Method != "" {
		q.Set("metodo_pago", string(filter.Method))
	}
	if !filter.From.IsZero() {
		q.Set("fecha_desde", filter.From.Format(backendDateLayout))
	}
	if !filter.To.IsZero() {
		q.Set("fecha_hasta", filter.To.Format(backendDateLayout))
	}

	var page listEnvelope[pagoDTO]
	if err := r.client.get(ctx, "/pagos/", q, &page); err != nil {
		return nil, err
	}
	out := make([]entities.Payment, 0, len(page.Items))
	for _, dto := range page.Items {
		out = append(out, toPayment(dto))
	}
	return out, nil
}
