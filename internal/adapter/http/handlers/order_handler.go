package handlers

import (
	"bordados_admin/internal/adapter/http/dto/request"
	"bordados_admin/internal/adapter/http/dto/response"
	"bordados_admin/internal/usecase"
	"bordados_admin/internal/validation"
	"bordados_admin/pkg"
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// OrderHandler serves the order screens: listing, detail, state changes,
// creation and price preview.
type OrderHandler struct {
	usecase   usecase.IOrderUseCase
	validator *validatorv10.Validate
	log       *zap.SugaredLogger
}

func NewOrderHandler(uc usecase.IOrderUseCase, v *validatorv10.Validate, log *zap.SugaredLogger) *OrderHandler {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &OrderHandler{usecase: uc, validator: v, log: log}
}

// ListOrders godoc
// @Summary  List orders
// @Tags     orders
// @Produce  json
// @Param    state      query  string  false  "Order state"
// @Param    client_id  query  int     false  "Client ID"
// @Success  200  {array}   response.OrderResponse
// @Failure  400  {object}  pkg.HTTPError
// @Failure  502  {object}  pkg.HTTPError
// @Router   /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	var q request.OrderListQuery
	if err := validation.BindQueryAndValidate(c, &q, h.validator); err != nil {
		return
	}
	orders, err := h.usecase.List(c.Request.Context(), q.ToFilter())
	if err != nil {
		h.log.Infof("[order][handler] list failed state=%q client_id=%d err=%v", q.State, q.ClientID, err)
		writeError(c, mapDomainError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromOrders(orders))
}

// ListStates returns every state with its legal successors.
//
// @Summary  List states and legal transitions
// @Tags     orders
// @Produce  json
// @Success  200  {array}  response.StateResponse
// @Router   /orders/states [get]
func (h *OrderHandler) ListStates(c *gin.Context) {
	c.JSON(http.StatusOK, response.FromStateCatalog(h.usecase.StateCatalog()))
}

// GetOrder godoc
// @Summary  Order detail with balance, next states and payments
// @Tags     orders
// @Produce  json
// @Param    id  path  int  true  "Order ID"
// @Success  200  {object}  response.OrderDetailResponse
// @Failure  404  {object}  pkg.HTTPError
// @Router   /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}
	detail, err := h.usecase.GetDetail(c.Request.Context(), id)
	if err != nil {
		h.log.Infof("[order][handler] get failed order_id=%d err=%v", id, err)
		writeError(c, mapDomainError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromOrderDetail(detail))
}

// UpdateState moves an order to the requested state and returns the order
// as re-read from the backend.
//
// @Summary  Change order state
// @Tags     orders
// @Accept   json
// @Produce  json
// @Param    id       path  int                        true  "Order ID"
// @Param    payload  body  request.TransitionRequest  true  "Payload"
// @Success  200  {object}  response.OrderDetailResponse
// @Failure  409  {object}  pkg.HTTPError
// @Failure  422  {object}  pkg.HTTPError
// @Router   /orders/{id}/state [patch]
func (h *OrderHandler) UpdateState(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}
	var req request.TransitionRequest
	if err := validation.BindAndValidate(c, &req, h.validator); err != nil {
		return
	}
	h.log.Infof("[order][handler] transition start order_id=%d target=%s", id, req.Target())

	detail, err := h.usecase.TransitionByID(c.Request.Context(), id, req.Target())
	if err != nil {
		h.log.Infof("[order][handler] transition failed order_id=%d target=%s err=%v", id, req.Target(), err)
		writeWriteError(c, h.log, h.usecase, id, req, err)
		return
	}
	h.log.Infof("[order][handler] transition success order_id=%d state=%s", id, detail.Order.State)
	c.JSON(http.StatusOK, response.FromOrderDetail(detail))
}

// CreateOrder godoc
// @Summary  Create order applying the client's discount
// @Tags     orders
// @Accept   json
// @Produce  json
// @Param    payload  body  request.CreateOrderRequest  true  "Payload"
// @Success  201  {object}  response.OrderDetailResponse
// @Failure  422  {object}  pkg.HTTPError
// @Router   /orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req request.CreateOrderRequest
	if err := validation.BindAndValidate(c, &req, h.validator); err != nil {
		return
	}
	draft, err := req.ToDraft()
	if err != nil {
		writeError(c, pkg.NewDomainError("INVALID_ORDER", "Datos del pedido incompletos", err, http.StatusBadRequest).WithMessage(err.Error()))
		return
	}

	detail, err := h.usecase.CreateOrder(c.Request.Context(), draft)
	if err != nil {
		h.log.Infof("[order][handler] create failed client_id=%d err=%v", req.ClientID, err)
		writeWriteError(c, h.log, h.usecase, 0, req, err)
		return
	}
	h.log.Infof("[order][handler] create success order_id=%d", detail.Order.ID)
	c.JSON(http.StatusCreated, response.FromOrderDetail(detail))
}

// PreviewPricing shows the discount that CreateOrder would apply.
//
// @Summary  Preview the discounted total
// @Tags     orders
// @Accept   json
// @Produce  json
// @Param    payload  body  request.PricingPreviewRequest  true  "Payload"
// @Success  200  {object}  response.PricingPreviewResponse
// @Router   /orders/pricing-preview [post]
func (h *OrderHandler) PreviewPricing(c *gin.Context) {
	var req request.PricingPreviewRequest
	if err := validation.BindAndValidate(c, &req, h.validator); err != nil {
		return
	}
	preview, err := h.usecase.PreviewPricing(c.Request.Context(), req.ClientID, req.Subtotal)
	if err != nil {
		writeError(c, mapDomainError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPricingPreview(preview))
}
