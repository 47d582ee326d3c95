package entities

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition  = errors.New("invalid state transition")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrPersistence        = errors.New("backend request failed")
	ErrValidationRejected = errors.New("backend rejected the request")
	ErrNotFound           = errors.New("not found")
	ErrOperationInFlight  = errors.New("another operation is in flight for this order")
)

// TransitionError reports a state change outside the transition table.
type TransitionError struct {
	From OrderState
	To   OrderState
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%v: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// AmountError reports an amount outside [Min, Max]. Max < Min means no amount
// is currently acceptable (e.g. the order is already settled).
type AmountError struct {
	Amount int64
	Min    int64
	Max    int64
	Reason string
}

func (e *AmountError) Error() string {
	return fmt.Sprintf("%v: %d (%s, valid range %d..%d)", ErrInvalidAmount, e.Amount, e.Reason, e.Min, e.Max)
}

func (e *AmountError) Unwrap() error { return ErrInvalidAmount }

// BackendError is a classified failure returned by the REST backend.
// Kind is one of ErrPersistence, ErrValidationRejected or ErrNotFound.
type BackendError struct {
	Kind       error
	StatusCode int
	Detail     string
}

func (e *BackendError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%v: %s", e.Kind, e.Detail)
	}
	return fmt.Sprintf("%v: status=%d %s", e.Kind, e.StatusCode, e.Detail)
}

func (e *BackendError) Unwrap() error { return e.Kind }
