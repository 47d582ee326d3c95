package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"bordados_admin/internal/domain/entities"
	"bordados_admin/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"go.uber.org/zap"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")

// paymentCreator is the part of payment.Client the gateway calls.
type paymentCreator interface {
	Create(ctx context.Context, request payment.Request) (*payment.Response, error)
}

// MercadoPagoGateway charges tarjeta payments. In mock mode every charge is
// approved locally without calling Mercado Pago.
type MercadoPagoGateway struct {
	client   paymentCreator
	mockMode bool
	log      *zap.SugaredLogger
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(accessToken string, mockMode bool, log *zap.SugaredLogger) (*MercadoPagoGateway, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if mockMode {
		log.Infof("[payment][gateway] mock mode enabled")
		return &MercadoPagoGateway{mockMode: true, log: log}, nil
	}

	if accessToken == "" {
		log.Infof("[payment][gateway] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		log.Infof("[payment][gateway] failed creating sdk config err=%v", err)
		return nil, err
	}
	log.Infof("[payment][gateway] Mercado Pago client initialized")

	return &MercadoPagoGateway{client: payment.NewClient(cfg), log: log}, nil
}

func (g *MercadoPagoGateway) Charge(ctx context.Context, charge entities.CardCharge) (entities.CardChargeResult, error) {
	if g != nil && g.mockMode {
		return g.mockCharge(charge)
	}
	if g == nil || g.client == nil {
		return entities.CardChargeResult{}, ErrMercadoPagoGatewayNotConfigured
	}
	g.log.Infof("[payment][gateway] charge start order_id=%d amount=%d payload_len=%d", charge.OrderID, charge.Amount, len(charge.Payload))

	var req payment.Request
	if len(charge.Payload) > 0 {
		if err := json.Unmarshal(charge.Payload, &req); err != nil {
			g.log.Infof("[payment][gateway] payload unmarshal failed order_id=%d err=%v", charge.OrderID, err)
			return entities.CardChargeResult{}, err
		}
	}
	// The validated payment is the source of truth for amount and linkage.
	req.TransactionAmount = float64(charge.Amount)
	req.ExternalReference = strconv.FormatInt(charge.OrderID, 10)
	if req.Description == "" {
		req.Description = charge.Description
	}

	resp, err := g.client.Create(ctx, req)
	if err != nil {
		g.log.Infof("[payment][gateway] sdk create failed order_id=%d err=%v", charge.OrderID, err)
		return entities.CardChargeResult{}, err
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		return entities.CardChargeResult{}, err
	}
	g.log.Infof("[payment][gateway] charge done order_id=%d provider_payment_id=%d provider_status=%s", charge.OrderID, resp.ID, resp.Status)
	return entities.CardChargeResult{ProviderID: fmt.Sprintf("%d", resp.ID), Status: resp.Status, Raw: raw}, nil
}

func (g *MercadoPagoGateway) mockCharge(charge entities.CardCharge) (entities.CardChargeResult, error) {
	id := strconv.FormatInt(time.Now().UTC().UnixNano(), 10)
	now := time.Now().UTC().Format(time.RFC3339Nano)
	raw, err := json.Marshal(map[string]any{
		"id":                 id,
		"status":             "approved",
		"status_detail":      "accredited",
		"transaction_amount": charge.Amount,
		"external_reference": strconv.FormatInt(charge.OrderID, 10),
		"date_created":       now,
		"date_approved":      now,
	})
	if err != nil {
		return entities.CardChargeResult{}, err
	}
	g.log.Infof("[payment][gateway] mock charge approved order_id=%d provider_payment_id=%s", charge.OrderID, id)
	return entities.CardChargeResult{ProviderID: id, Status: "approved", Raw: raw}, nil
}
