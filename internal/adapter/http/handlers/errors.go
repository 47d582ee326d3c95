package handlers

import (
	"bordados_admin/internal/adapter/http/dto/response"
	"bordados_admin/internal/domain/entities"
	"bordados_admin/internal/usecase"
	"bordados_admin/pkg"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var errInvalidOrderID = pkg.NewDomainErrorSimple("INVALID_ORDER_ID", "Identificador de pedido inválido", http.StatusBadRequest)

// orderDetailReader re-reads an order after a write was rejected.
type orderDetailReader interface {
	GetDetail(ctx context.Context, id int64) (usecase.OrderDetail, error)
}

func parseOrderID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(errInvalidOrderID.HTTPStatus, errInvalidOrderID.ToHTTPError())
		return 0, false
	}
	return id, true
}

func writeError(c *gin.Context, appErr *pkg.AppError) {
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

// writeWriteError renders a failed write. Backend rejections carry the
// order as it is now; persistence failures echo the input back so the user
// can retry without retyping it.
func writeWriteError(c *gin.Context, log *zap.SugaredLogger, orders orderDetailReader, orderID int64, input any, err error) {
	appErr := mapDomainError(err)
	switch {
	case errors.Is(err, entities.ErrValidationRejected) && orderID > 0 && orders != nil:
		detail, dErr := orders.GetDetail(c.Request.Context(), orderID)
		if dErr != nil {
			log.Warnf("[http] re-read after rejection failed order_id=%d err=%v", orderID, dErr)
			break
		}
		appErr = appErr.WithDetail("order", response.FromOrderDetail(detail))
	case errors.Is(err, entities.ErrPersistence) || errors.Is(err, usecase.ErrCardChargeFailed):
		if input != nil {
			appErr = appErr.WithDetail("input", input)
		}
	}
	writeError(c, appErr)
}

func mapDomainError(err error) *pkg.AppError {
	var (
		transitionErr *entities.TransitionError
		amountErr     *entities.AmountError
		backendErr    *entities.BackendError
		notRecorded   *usecase.CardChargedNotRecordedError
	)
	switch {
	case errors.As(err, &notRecorded):
		return pkg.NewDomainError("CARD_CHARGED_NOT_RECORDED", "Cobro realizado sin registrar", err, http.StatusBadGateway).
			WithMessage(fmt.Sprintf("La tarjeta fue cobrada (referencia %s) pero el pago no se registró. No reintente el cobro; registre el pago manualmente con esa referencia", notRecorded.ProviderID)).
			WithDetail("provider_id", notRecorded.ProviderID).
			WithDetail("amount", notRecorded.Amount).
			WithDetail("retryable", false)
	case errors.As(err, &transitionErr):
		allowed := make([]string, 0)
		for _, s := range transitionErr.From.LegalNextStates() {
			allowed = append(allowed, string(s))
		}
		return pkg.NewDomainError("INVALID_TRANSITION", "Cambio de estado no permitido", err, http.StatusUnprocessableEntity).
			WithMessage(fmt.Sprintf("No se puede pasar de %q a %q", transitionErr.From.Info().Label, transitionErr.To.Info().Label)).
			WithDetail("from", string(transitionErr.From)).
			WithDetail("to", string(transitionErr.To)).
			WithDetail("allowed", allowed)
	case errors.As(err, &amountErr):
		return pkg.NewDomainError("INVALID_AMOUNT", "Monto inválido", err, http.StatusUnprocessableEntity).
			WithMessage(amountMessage(amountErr)).
			WithDetail("amount", amountErr.Amount).
			WithDetail("min", amountErr.Min).
			WithDetail("max", amountErr.Max)
	case errors.Is(err, entities.ErrOperationInFlight):
		return pkg.NewDomainError("OPERATION_IN_FLIGHT", "Operación en curso", err, http.StatusConflict).
			WithMessage("Ya hay una operación en curso para este pedido; espere a que termine")
	case errors.Is(err, usecase.ErrInvalidOrderID):
		return errInvalidOrderID
	case errors.Is(err, usecase.ErrInvalidClientID):
		return pkg.NewDomainErrorSimple("INVALID_CLIENT_ID", "Cliente inválido", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidOrderDraft):
		return pkg.NewDomainErrorSimple("INVALID_ORDER", "Datos del pedido incompletos", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrUnknownState):
		return pkg.NewDomainErrorSimple("UNKNOWN_STATE", "Estado desconocido", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidPaymentMethod):
		return pkg.NewDomainErrorSimple("INVALID_PAYMENT_METHOD", "Método de pago inválido", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayNotConfigured):
		return pkg.NewDomainError("PAYMENT_GATEWAY_UNAVAILABLE", "Pagos con tarjeta no disponibles", err, http.StatusServiceUnavailable)
	case errors.Is(err, usecase.ErrCardChargeDeclined):
		return pkg.NewDomainError("CARD_DECLINED", "Pago con tarjeta rechazado", err, http.StatusPaymentRequired)
	case errors.Is(err, usecase.ErrCardChargeFailed):
		return pkg.NewDomainError("CARD_CHARGE_FAILED", "No se pudo procesar la tarjeta", err, http.StatusBadGateway).
			WithDetail("retryable", true)
	case errors.Is(err, entities.ErrNotFound):
		return pkg.NewDomainError("NOT_FOUND", "No encontrado", err, http.StatusNotFound).
			WithMessage(backendMessage(err, &backendErr, "El recurso solicitado no existe"))
	case errors.Is(err, entities.ErrValidationRejected):
		return pkg.NewDomainError("BACKEND_REJECTED", "El servidor rechazó la operación", err, http.StatusConflict).
			WithMessage(backendMessage(err, &backendErr, "Los datos fueron rechazados"))
	case errors.Is(err, entities.ErrPersistence):
		return pkg.NewDomainError("PERSISTENCE_FAILED", "No se pudo guardar", err, http.StatusBadGateway).
			WithMessage(backendMessage(err, &backendErr, "No se pudo contactar al servidor")).
			WithDetail("retryable", true)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "Error interno", err, http.StatusInternalServerError)
	}
}

func amountMessage(e *entities.AmountError) string {
	switch {
	case e.Amount < e.Min:
		return fmt.Sprintf("El monto debe ser mayor o igual a %d", e.Min)
	case e.Max < e.Min:
		return "El pedido no tiene saldo pendiente"
	}
	return fmt.Sprintf("El monto debe estar entre %d y %d", e.Min, e.Max)
}

func backendMessage(err error, target **entities.BackendError, fallback string) string {
	if errors.As(err, target) && (*target).Detail != "" {
		return (*target).Detail
	}
	return fallback
}
