package main

import (
	"bordados_admin/internal/adapter/http/handlers"
	"bordados_admin/internal/adapter/http/routes"
	"bordados_admin/internal/adapter/persistence/repository"
	"bordados_admin/internal/config"
	"bordados_admin/internal/infrastructure/cache"
	"bordados_admin/internal/infrastructure/database"
	"bordados_admin/internal/infrastructure/messaging"
	"bordados_admin/internal/infrastructure/metrics"
	"bordados_admin/internal/infrastructure/payments"
	"bordados_admin/internal/usecase"
	"bordados_admin/internal/usecase/interfaces"
	"bordados_admin/internal/validation"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"go.uber.org/zap"
)

type app struct {
	handlers routes.Handlers
	closers  []func() error
	log      *zap.SugaredLogger
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Warnf("[main] shutdown step failed err=%v", err)
		}
	}
}

// buildApp wires repositories, infrastructure and handlers from cfg.
// Optional components that are disabled or unreachable are left nil and the
// use cases run without them.
func buildApp(ctx context.Context, cfg config.Config, log *zap.SugaredLogger) (*app, error) {
	a := &app{log: log}

	backend := repository.NewBackendClient(cfg.BackendURL, cfg.BackendTimeout,
		repository.WithToken(cfg.BackendToken),
		repository.WithLogger(log),
	)

	deps := usecase.Collaborators{
		Orders:   repository.NewOrderRestRepository(backend),
		Payments: repository.NewPaymentRestRepository(backend),
		Clients:  repository.NewClientRestRepository(backend),
		Guard:    repository.NewMemoryOperationGuard(cfg.GuardTTL),
		Logger:   log,
	}

	if cfg.RedisAddr != "" {
		rdb := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := cache.Ping(ctx, rdb); err != nil {
			log.Warnf("[main] redis unreachable, client cache disabled addr=%s err=%v", cfg.RedisAddr, err)
			_ = rdb.Close()
		} else {
			deps.Clients = repository.NewCachedClientRepository(deps.Clients, rdb, cfg.ClientCacheTTL, log)
			a.closers = append(a.closers, rdb.Close)
			log.Infof("[main] client cache enabled addr=%s ttl=%s", cfg.RedisAddr, cfg.ClientCacheTTL)
		}
	}

	var awsCfg aws.Config
	if cfg.NeedsAWS() {
		var err error
		awsCfg, err = database.LoadAWSConfig(ctx, database.AWSOptions{Region: cfg.AWSRegion, Endpoint: cfg.DynamoDBEndpoint})
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
	}

	if cfg.DynamoDBEnabled {
		ddb := database.NewDynamoDBClient(awsCfg, cfg.DynamoDBEndpoint)
		deps.Guard = repository.NewDynamoOperationGuard(ddb, cfg.GuardTable, cfg.GuardTTL)
		deps.Audit = repository.NewPricingAuditDynamoRepository(ddb, cfg.PricingAuditTable)
		log.Infof("[main] dynamodb enabled guard_table=%s audit_table=%s", cfg.GuardTable, cfg.PricingAuditTable)
	}

	events, err := buildEventPublisher(cfg, awsCfg, log)
	if err != nil {
		return nil, err
	}
	if events != nil {
		deps.Events = events
		if c, ok := events.(interface{ Close() error }); ok {
			a.closers = append(a.closers, c.Close)
		}
	}

	if cfg.MetricsEnabled {
		deps.Metrics = metrics.NewCloudWatchRecorder(cloudwatch.NewFromConfig(awsCfg), cfg.MetricsNamespace)
		log.Infof("[main] cloudwatch metrics enabled namespace=%s", cfg.MetricsNamespace)
	}

	gateway, err := payments.NewMercadoPagoGateway(cfg.MercadoPagoAccessToken, cfg.PaymentGatewayMock, log)
	if err != nil {
		log.Warnf("[main] card payments disabled err=%v", err)
	} else {
		deps.Gateway = gateway
	}

	orderUseCase := usecase.NewOrderUseCase(deps)
	paymentUseCase := usecase.NewPaymentUseCase(deps)
	v := validation.New()

	a.handlers = routes.Handlers{
		Orders:   handlers.NewOrderHandler(orderUseCase, v, log),
		Payments: handlers.NewPaymentHandler(paymentUseCase, orderUseCase, v, log),
		Logger:   log,
	}
	return a, nil
}

func buildEventPublisher(cfg config.Config, awsCfg aws.Config, log *zap.SugaredLogger) (interfaces.IEventPublisher, error) {
	switch cfg.EventsBackend {
	case config.EventsBackendSQS:
		log.Infof("[main] events to sqs queue=%s", cfg.EventsQueueURL)
		return messaging.NewSQSEventPublisher(sqs.NewFromConfig(awsCfg), cfg.EventsQueueURL), nil
	case config.EventsBackendKafka:
		p, err := messaging.DialKafkaEventPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			return nil, fmt.Errorf("connect kafka: %w", err)
		}
		log.Infof("[main] events to kafka brokers=%s topic=%s", cfg.KafkaBrokers, cfg.KafkaTopic)
		return p, nil
	case config.EventsBackendLog:
		return messaging.NewLogEventPublisher(log), nil
	}
	return nil, nil
}
