package repository

import (
	"context"
	"fmt"

	"bordados_admin/internal/domain/entities"
	"bordados_admin/internal/usecase/interfaces"
)

type ClientRestRepository struct {
	client *BackendClient
}

var _ interfaces.IClientRepository = (*ClientRestRepository)(nil)

func NewClientRestRepository(client *BackendClient) *ClientRestRepository {
	return &ClientRestRepository{client: client}
}

func (r *ClientRestRepository) GetByID(ctx context.Context, id int64) (entities.Client, error) {
	var dto clienteDTO
	if err := r.client.get(ctx, fmt.Sprintf("/clientes/%d/", id), nil, &dto); err != nil {
		return entities.Client{}, err
	}
	return toClient(dto), nil
}
