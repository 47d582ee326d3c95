package repository

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"bordados_admin/internal/domain/entities"

	"github.com/shopspring/decimal"
)

const backendDateLayout = "2006-01-02"

// pedidoDTO is the backend's order representation. Money fields arrive as
// numbers or decimal strings ("150000.00"); both decode into decimal.Decimal.
type pedidoDTO struct {
	ID                    int64            `json:"id"`
	Cliente               int64            `json:"cliente"`
	ClienteNombre         string           `json:"cliente_nombre"`
	ClienteTelefono       string           `json:"cliente_telefono"`
	ClienteDescuento      *decimal.Decimal `json:"cliente_descuento"`
	FechaEntregaPrometida string           `json:"fecha_entrega_prometida"`
	FechaEntregaReal      *string          `json:"fecha_entrega_real"`
	TipoBordado           string           `json:"tipo_bordado"`
	Descripcion           string           `json:"descripcion"`
	Especificaciones      string           `json:"especificaciones"`
	NotasInternas         string           `json:"notas_internas"`
	PrecioTotal           decimal.Decimal  `json:"precio_total"`
	Adelanto              decimal.Decimal  `json:"adelanto"`
	TotalPagado           *decimal.Decimal `json:"total_pagado"`
	SaldoPendiente        *decimal.Decimal `json:"saldo_pendiente"`
	Estado                string           `json:"estado"`
	DescuentoAplicado     *decimal.Decimal `json:"descuento_aplicado"`
	FechaCreacion         string           `json:"fecha_creacion"`
	FechaActualizacion    string           `json:"fecha_actualizacion"`
}

type pedidoCreateDTO struct {
	Cliente               int64           `json:"cliente"`
	FechaEntregaPrometida string          `json:"fecha_entrega_prometida"`
	TipoBordado           string          `json:"tipo_bordado"`
	Descripcion           string          `json:"descripcion"`
	Especificaciones      string          `json:"especificaciones,omitempty"`
	NotasInternas         string          `json:"notas_internas,omitempty"`
	PrecioTotal           int64           `json:"precio_total"`
	Adelanto              int64           `json:"adelanto"`
	Estado                string          `json:"estado"`
	DescuentoAplicado     decimal.Decimal `json:"descuento_aplicado"`
}

type pedidoStateDTO struct {
	Estado           string  `json:"estado"`
	FechaEntregaReal *string `json:"fecha_entrega_real,omitempty"`
}

type clienteDTO struct {
	ID                int64            `json:"id"`
	Nombre            string           `json:"nombre"`
	Telefono          string           `json:"telefono"`
	TipoCliente       string           `json:"tipo_cliente"`
	DescuentoEspecial *decimal.Decimal `json:"descuento_especial"`
}

type pagoDTO struct {
	ID         int64           `json:"id,omitempty"`
	Pedido     int64           `json:"pedido"`
	Monto      decimal.Decimal `json:"monto"`
	MetodoPago string          `json:"metodo_pago"`
	Concepto   string          `json:"concepto"`
	Notas      string          `json:"notas"`
	Referencia string          `json:"referencia,omitempty"`
	Fecha      string          `json:"fecha,omitempty"`
}

// listEnvelope accepts both a bare JSON array and a paginated
// {"results": [...]} body.
type listEnvelope[T any] struct {
	Items []T
}

func (l *listEnvelope[T]) UnmarshalJSON(b []byte) error {
	trimmed := strings.TrimSpace(string(b))
	if strings.HasPrefix(trimmed, "[") {
		return json.Unmarshal(b, &l.Items)
	}
	var page struct {
		Results []T `json:"results"`
	}
	if err := json.Unmarshal(b, &page); err != nil {
		return err
	}
	l.Items = page.Results
	return nil
}

func toOrder(d pedidoDTO) (entities.Order, error) {
	promised, err := parseBackendDate(d.FechaEntregaPrometida)
	if err != nil {
		return entities.Order{}, fmt.Errorf("fecha_entrega_prometida: %w", err)
	}

	o := entities.Order{
		ID:                     d.ID,
		ClientID:               d.Cliente,
		ClientName:             d.ClienteNombre,
		ClientPhone:            strings.TrimSpace(d.ClienteTelefono),
		PromisedDate:           promised,
		EmbroideryType:         entities.EmbroideryType(d.TipoBordado),
		Description:            d.Descripcion,
		Specifications:         d.Especificaciones,
		InternalNotes:          d.NotasInternas,
		TotalPrice:             d.PrecioTotal.IntPart(),
		AdvancePayment:         d.Adelanto.IntPart(),
		AppliedDiscountPercent: d.DescuentoAplicado,
		State:                  entities.OrderState(d.Estado),
	}
	if d.ClienteDescuento != nil {
		o.ClientDiscount = *d.ClienteDescuento
	}

	// total_pagado is authoritative; older backends only report the pending
	// balance, and the oldest only the advance.
	switch {
	case d.TotalPagado != nil:
		o.AmountPaid = d.TotalPagado.IntPart()
	case d.SaldoPendiente != nil:
		o.AmountPaid = o.TotalPrice - d.SaldoPendiente.IntPart()
	default:
		o.AmountPaid = o.AdvancePayment
	}

	if d.FechaEntregaReal != nil && *d.FechaEntregaReal != "" {
		delivered, err := parseBackendDate(*d.FechaEntregaReal)
		if err != nil {
			return entities.Order{}, fmt.Errorf("fecha_entrega_real: %w", err)
		}
		o.DeliveredAt = &delivered
	}
	o.CreatedAt = parseBackendTimestamp(d.FechaCreacion)
	o.UpdatedAt = parseBackendTimestamp(d.FechaActualizacion)
	return o, nil
}

func toPedidoCreate(draft entities.OrderDraft, pricing entities.PricingPreview) pedidoCreateDTO {
	return pedidoCreateDTO{
		Cliente:               draft.ClientID,
		FechaEntregaPrometida: draft.PromisedDate.Format(backendDateLayout),
		TipoBordado:           string(draft.EmbroideryType),
		Descripcion:           draft.Description,
		Especificaciones:      draft.Specifications,
		NotasInternas:         draft.InternalNotes,
		PrecioTotal:           pricing.FinalTotal,
		Adelanto:              draft.AdvancePayment,
		Estado:                string(entities.InitialState),
		DescuentoAplicado:     pricing.DiscountPercent,
	}
}

func toClient(d clienteDTO) entities.Client {
	c := entities.Client{
		ID:    d.ID,
		Name:  d.Nombre,
		Phone: d.Telefono,
		Type:  entities.ClientType(d.TipoCliente),
	}
	if d.DescuentoEspecial != nil {
		c.DiscountPercent = *d.DescuentoEspecial
	}
	return c
}

func toPayment(d pagoDTO) entities.Payment {
	return entities.Payment{
		ID:        d.ID,
		OrderID:   d.Pedido,
		Amount:    d.Monto.IntPart(),
		Method:    entities.PaymentMethod(d.MetodoPago),
		Concept:   d.Concepto,
		Notes:     d.Notas,
		Reference: d.Referencia,
		CreatedAt: parseBackendTimestamp(d.Fecha),
	}
}

func toPagoDTO(p entities.Payment) pagoDTO {
	return pagoDTO{
		Pedido:     p.OrderID,
		Monto:      decimal.NewFromInt(p.Amount),
		MetodoPago: string(p.Method),
		Concepto:   p.Concept,
		Notas:      p.Notes,
		Referencia: p.Reference,
	}
}

func parseBackendDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(backendDateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func parseBackendTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999", backendDateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
