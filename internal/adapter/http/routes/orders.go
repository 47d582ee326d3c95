package routes

import (
	"bordados_admin/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathOrders   = "/orders"
	PathPayments = "/payments"
)

func addOrderRoutes(rg *gin.RouterGroup, orderHandler *handlers.OrderHandler, paymentHandler *handlers.PaymentHandler) {
	orders := rg.Group(PathOrders)
	{
		orders.GET("", orderHandler.ListOrders)
		orders.POST("", orderHandler.CreateOrder)
		orders.GET("/states", orderHandler.ListStates)
		orders.POST("/pricing-preview", orderHandler.PreviewPricing)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.PATCH("/:id/state", orderHandler.UpdateState)

		orders.GET("/:id/payments", paymentHandler.ListPayments)
		orders.POST("/:id/payments", paymentHandler.CreatePayment)
		orders.GET("/:id/payments/suggested-concept", paymentHandler.SuggestConcept)
	}
}

func addPaymentRoutes(rg *gin.RouterGroup, paymentHandler *handlers.PaymentHandler) {
	payments := rg.Group(PathPayments)
	{
		payments.GET("/export", paymentHandler.ExportCSV)
	}
}
