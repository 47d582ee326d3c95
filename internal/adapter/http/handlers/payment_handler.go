package handlers

import (
	"bordados_admin/internal/adapter/http/dto/request"
	"bordados_admin/internal/adapter/http/dto/response"
	"bordados_admin/internal/usecase"
	"bordados_admin/internal/validation"
	"bordados_admin/pkg"
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	usecase   usecase.IPaymentUseCase
	orders    orderDetailReader
	validator *validatorv10.Validate
	log       *zap.SugaredLogger
	now       func() time.Time
}

func NewPaymentHandler(uc usecase.IPaymentUseCase, orders usecase.IOrderUseCase, v *validatorv10.Validate, log *zap.SugaredLogger) *PaymentHandler {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &PaymentHandler{usecase: uc, orders: orders, validator: v, log: log, now: time.Now}
}

// ListPayments godoc
// @Summary  List payments of an order
// @Tags     payments
// @Produce  json
// @Param    id  path  int  true  "Order ID"
// @Success  200  {array}  response.PaymentResponse
// @Router   /orders/{id}/payments [get]
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}
	payments, err := h.usecase.ListByOrderID(c.Request.Context(), id)
	if err != nil {
		h.log.Infof("[payment][handler] list failed order_id=%d err=%v", id, err)
		writeError(c, mapDomainError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPayments(payments))
}

// SuggestConcept labels a prospective payment of ?amount= for the order.
//
// @Summary  Suggest a payment concept
// @Tags     payments
// @Produce  json
// @Param    id      path   int  true  "Order ID"
// @Param    amount  query  int  true  "Payment amount"
// @Success  200  {object}  response.ConceptSuggestionResponse
// @Failure  404  {object}  pkg.HTTPError
// @Router   /orders/{id}/payments/suggested-concept [get]
func (h *PaymentHandler) SuggestConcept(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}
	amount, err := strconv.ParseInt(c.Query("amount"), 10, 64)
	if err != nil {
		writeError(c, pkg.NewDomainErrorSimple("INVALID_AMOUNT", "Monto inválido", http.StatusBadRequest).
			WithMessage("El parámetro amount debe ser un número entero"))
		return
	}
	suggestion, err := h.usecase.SuggestConcept(c.Request.Context(), id, amount)
	if err != nil {
		writeError(c, mapDomainError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromConceptSuggestion(suggestion))
}

// CreatePayment godoc
// @Summary  Record a payment
// @Tags     payments
// @Accept   json
// @Produce  json
// @Param    id       path  int                           true  "Order ID"
// @Param    payload  body  request.PaymentCreateRequest  true  "Payload"
// @Success  201  {object}  response.PaymentReceiptResponse
// @Failure  402  {object}  pkg.HTTPError
// @Failure  409  {object}  pkg.HTTPError
// @Failure  422  {object}  pkg.HTTPError
// @Failure  502  {object}  pkg.HTTPError
// @Router   /orders/{id}/payments [post]
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}
	var req request.PaymentCreateRequest
	if err := validation.BindAndValidate(c, &req, h.validator); err != nil {
		return
	}
	h.log.Infof("[payment][handler] create start order_id=%d amount=%d method=%s", id, req.Amount, req.Method)

	receipt, err := h.usecase.RecordPayment(c.Request.Context(), id, req.ToDraft())
	if err != nil {
		h.log.Infof("[payment][handler] create failed order_id=%d err=%v", id, err)
		writeWriteError(c, h.log, h.orders, id, req.Redacted(), err)
		return
	}
	h.log.Infof("[payment][handler] create success order_id=%d payment_id=%d", id, receipt.Payment.ID)
	c.JSON(http.StatusCreated, response.FromPaymentReceipt(receipt))
}

// ExportCSV downloads the filtered payment history. The CSV is buffered so a
// failure can still be reported as a JSON error.
//
// @Summary  Export payment history as CSV
// @Tags     payments
// @Produce  text/csv
// @Param    order_id  query  int     false  "Order ID"
// @Param    method    query  string  false  "Payment method"
// @Param    from      query  string  false  "From day (YYYY-MM-DD)"
// @Param    to        query  string  false  "To day (YYYY-MM-DD)"
// @Success  200  {file}  file
// @Router   /payments/export [get]
func (h *PaymentHandler) ExportCSV(c *gin.Context) {
	var q request.PaymentExportQuery
	if err := validation.BindQueryAndValidate(c, &q, h.validator); err != nil {
		return
	}
	filter, err := q.ToFilter()
	if err != nil {
		writeError(c, pkg.NewDomainError("INVALID_QUERY", "Parámetros inválidos", err, http.StatusBadRequest).WithMessage(err.Error()))
		return
	}

	var buf bytes.Buffer
	rows, err := h.usecase.ExportCSV(c.Request.Context(), filter, &buf)
	if err != nil {
		h.log.Infof("[payment][handler] export failed err=%v", err)
		writeError(c, mapDomainError(err))
		return
	}
	filename := fmt.Sprintf("pagos-%s.csv", h.now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("X-Total-Count", strconv.Itoa(rows))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
