package pkg

import (
	"errors"
	"net/http"
	"testing"
)

func TestAppError(t *testing.T) {
	t.Run("simple", func(t *testing.T) {
		e := NewDomainErrorSimple("NOT_FOUND", "Pedido no encontrado", http.StatusNotFound)
		if e.Message != e.Title {
			t.Fatalf("expected message to default to title, got %+v", e)
		}
		if e.Error() != "NOT_FOUND: Pedido no encontrado" {
			t.Fatalf("unexpected error string %q", e.Error())
		}
		if e.Unwrap() != nil {
			t.Fatalf("expected nil cause")
		}
	})

	t.Run("wraps cause", func(t *testing.T) {
		cause := errors.New("boom")
		e := NewDomainError("INTERNAL_ERROR", "Error interno", cause, http.StatusInternalServerError)
		if !errors.Is(e, cause) {
			t.Fatalf("expected errors.Is to reach cause")
		}
	})

	t.Run("details are copied", func(t *testing.T) {
		base := NewDomainErrorSimple("INVALID_AMOUNT", "Monto inválido", http.StatusUnprocessableEntity)
		a := base.WithDetail("min", 1)
		b := a.WithDetail("max", 10).WithMessage("El monto supera el saldo")

		if base.Details != nil {
			t.Fatalf("base must stay untouched, got %+v", base.Details)
		}
		if len(a.Details) != 1 || len(b.Details) != 2 {
			t.Fatalf("unexpected details a=%+v b=%+v", a.Details, b.Details)
		}
		body := b.ToHTTPError()
		if body.Code != "INVALID_AMOUNT" || body.Message != "El monto supera el saldo" || body.Details["max"] != 10 {
			t.Fatalf("unexpected body %+v", body)
		}
	})
}
