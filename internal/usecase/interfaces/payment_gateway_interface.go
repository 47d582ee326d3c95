package interfaces

import (
	"bordados_admin/internal/domain/entities"
	"context"
)

// IPaymentGateway charges card (tarjeta) payments through an external
// processor. Cash and transfer payments never reach it.
type IPaymentGateway interface {
	Charge(ctx context.Context, charge entities.CardCharge) (entities.CardChargeResult, error)
}
