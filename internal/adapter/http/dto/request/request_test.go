package request

import (
	"testing"
	"time"

	"bordados_admin/internal/domain/entities"
)

func TestCreateOrderRequest_ToDraft(t *testing.T) {
	r := CreateOrderRequest{
		ClientID:       7,
		PromisedDate:   "2026-11-03",
		EmbroideryType: " manual ",
		Description:    "Escudo",
		Specifications: "  hilo dorado ",
		Subtotal:       1000,
		AdvancePayment: 200,
	}
	d, err := r.ToDraft()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.EmbroideryType != entities.EmbroideryManual || d.Specifications != "hilo dorado" {
		t.Fatalf("unexpected draft: %+v", d)
	}
	if y, m, day := d.PromisedDate.Date(); y != 2026 || m != time.November || day != 3 {
		t.Fatalf("unexpected promised date %v", d.PromisedDate)
	}

	r.PromisedDate = "03/11/2026"
	if _, err := r.ToDraft(); err == nil {
		t.Fatalf("expected date error")
	}
}

func TestPaymentExportQuery_ToFilter(t *testing.T) {
	f, err := PaymentExportQuery{OrderID: 3, Method: "tarjeta", From: "2026-10-01"}.ToFilter()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.OrderID != 3 || f.Method != entities.PaymentTarjeta || f.From.IsZero() || !f.To.IsZero() {
		t.Fatalf("unexpected filter: %+v", f)
	}

	if _, err := (PaymentExportQuery{To: "ayer"}).ToFilter(); err == nil {
		t.Fatalf("expected date error")
	}
}

func TestTransitionRequest_Target(t *testing.T) {
	if got := (TransitionRequest{State: " en_diseno "}).Target(); got != entities.StateEnDiseno {
		t.Fatalf("expected en_diseno, got %q", got)
	}
}

func TestPaymentCreateRequest_Redacted(t *testing.T) {
	r := PaymentCreateRequest{Amount: 100, Method: "tarjeta", Notes: "caja", Card: []byte(`{"token":"tok"}`)}
	red := r.Redacted()
	if red.Card != nil {
		t.Fatalf("expected card payload removed, got %s", red.Card)
	}
	if red.Amount != 100 || red.Method != "tarjeta" || red.Notes != "caja" {
		t.Fatalf("unexpected redacted request %+v", red)
	}
	if r.Card == nil {
		t.Fatalf("original request must keep its card payload")
	}
}
