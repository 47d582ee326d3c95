package main

import (
	_ "bordados_admin/docs"
	"bordados_admin/internal/adapter/http/routes"
	"bordados_admin/internal/config"
	"bordados_admin/internal/infrastructure/logger"
	"context"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	_ "github.com/joho/godotenv/autoload"
)

// @title           Bordados Admin API
// @version         1.0
// @description     Back office for an embroidery shop: order lifecycle, balances and payments over the shop backend.

// @host localhost:8080

// @BasePath  /v1

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	sugar, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = sugar.Sync() }()

	ctx := context.Background()
	app, err := buildApp(ctx, cfg, sugar)
	if err != nil {
		sugar.Fatalf("[main] failed to wire application err=%v", err)
	}
	defer app.close()

	router := routes.NewRouter(app.handlers)

	if cfg.LambdaMode {
		sugar.Infof("[main] starting in lambda mode")
		adapter := ginadapter.New(router)
		lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (interface{}, error) {
			return adapter.ProxyWithContext(ctx, req)
		})
		return
	}

	sugar.Infof("[main] listening port=%d backend=%s", cfg.Port, cfg.BackendURL)
	if err := routes.Run(router, cfg.Port); err != nil {
		sugar.Fatalf("[main] failed to startup the application err=%v", err)
	}
}
