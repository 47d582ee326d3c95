package routes

import (
	"bordados_admin/internal/adapter/http/handlers"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Orders   *handlers.OrderHandler
	Payments *handlers.PaymentHandler
	Logger   *zap.SugaredLogger
}

// NewRouter builds the gin engine with every /v1 route and the Swagger UI.
func NewRouter(h Handlers) *gin.Engine {
	log := h.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	router := gin.New()
	setMiddlewares(router, log)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addOrderRoutes(v1, h.Orders, h.Payments)
	addPaymentRoutes(v1, h.Payments)
	return router
}

// Run serves router on port until it fails.
func Run(router *gin.Engine, port int) error {
	return router.Run(":" + strconv.Itoa(port))
}

func setMiddlewares(router *gin.Engine, log *zap.SugaredLogger) {
	router.Use(requestLogger(log))
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Errorf("[http] recovered from panic method=%s path=%s panic=%v", c.Request.Method, c.Request.URL.Path, recovered)
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
}

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
}
