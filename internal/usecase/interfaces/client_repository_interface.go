package interfaces

import (
	"bordados_admin/internal/domain/entities"
	"context"
)

type IClientRepository interface {
	GetByID(ctx context.Context, id int64) (entities.Client, error)
}
