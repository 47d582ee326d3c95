package interfaces

import "context"

// IOperationGuard allows one outstanding write per order.
//
// Acquire returns entities.ErrOperationInFlight when another write holds the
// order. Release must be called with the token returned by Acquire.
type IOperationGuard interface {
	Acquire(ctx context.Context, orderID int64, operation string) (token string, err error)
	Release(ctx context.Context, orderID int64, token string) error
}
