package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	EventsBackendNone  = "none"
	EventsBackendLog   = "log"
	EventsBackendSQS   = "sqs"
	EventsBackendKafka = "kafka"
)

// Config is the process configuration, read from the environment.
type Config struct {
	Port       int
	LogLevel   string
	LambdaMode bool

	BackendURL     string
	BackendTimeout time.Duration
	BackendToken   string

	AWSRegion        string
	DynamoDBEndpoint string
	DynamoDBEnabled  bool

	GuardTable        string
	GuardTTL          time.Duration
	PricingAuditTable string

	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	ClientCacheTTL time.Duration

	EventsBackend  string
	EventsQueueURL string
	KafkaBrokers   string
	KafkaTopic     string

	MetricsEnabled   bool
	MetricsNamespace string

	MercadoPagoAccessToken string
	PaymentGatewayMock     bool
}

// Load reads the configuration. Unset keys take their defaults; malformed
// values are reported instead of silently ignored.
func Load() (Config, error) {
	var errs []string
	intVar := func(key string, def int) int {
		v, err := getenvInt(key, def)
		if err != nil {
			errs = append(errs, err.Error())
		}
		return v
	}
	durVar := func(key string, def time.Duration) time.Duration {
		v, err := getenvDuration(key, def)
		if err != nil {
			errs = append(errs, err.Error())
		}
		return v
	}

	cfg := Config{
		Port:       intVar("PORT", 8080),
		LogLevel:   getenvDefault("LOG_LEVEL", "info"),
		LambdaMode: isTruthy(os.Getenv("LAMBDA_MODE")),

		BackendURL:     strings.TrimRight(getenvDefault("BACKEND_API_URL", "http://localhost:8000/api"), "/"),
		BackendTimeout: durVar("BACKEND_API_TIMEOUT", 10*time.Second),
		BackendToken:   os.Getenv("BACKEND_API_TOKEN"),

		AWSRegion:        getenvDefault("AWS_REGION", "us-east-1"),
		DynamoDBEndpoint: os.Getenv("DYNAMODB_ENDPOINT"),
		DynamoDBEnabled:  isTruthy(os.Getenv("DYNAMODB_ENABLED")),

		GuardTable:        getenvDefault("OPERATION_GUARD_TABLE", "order_operation_guards"),
		GuardTTL:          durVar("OPERATION_GUARD_TTL", 30*time.Second),
		PricingAuditTable: getenvDefault("PRICING_AUDIT_TABLE", "order_pricing_audit"),

		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        intVar("REDIS_DB", 0),
		ClientCacheTTL: durVar("CLIENT_CACHE_TTL", 5*time.Minute),

		EventsBackend:  strings.ToLower(getenvDefault("EVENTS_BACKEND", EventsBackendLog)),
		EventsQueueURL: os.Getenv("EVENTS_QUEUE_URL"),
		KafkaBrokers:   os.Getenv("KAFKA_BROKERS"),
		KafkaTopic:     getenvDefault("KAFKA_TOPIC", "bordados.orders"),

		MetricsEnabled:   isTruthy(os.Getenv("METRICS_ENABLED")),
		MetricsNamespace: getenvDefault("METRICS_NAMESPACE", "Bordados/Admin"),

		MercadoPagoAccessToken: strings.TrimSpace(os.Getenv("MERCADOPAGO_ACCESS_TOKEN")),
		PaymentGatewayMock:     isTruthy(os.Getenv("PAYMENT_GATEWAY_MOCK")) || isTruthy(os.Getenv("MERCADOPAGO_MOCK")),
	}

	switch cfg.EventsBackend {
	case EventsBackendNone, EventsBackendLog:
	case EventsBackendSQS:
		if cfg.EventsQueueURL == "" {
			errs = append(errs, "EVENTS_QUEUE_URL is required when EVENTS_BACKEND=sqs")
		}
	case EventsBackendKafka:
		if cfg.KafkaBrokers == "" {
			errs = append(errs, "KAFKA_BROKERS is required when EVENTS_BACKEND=kafka")
		}
	default:
		errs = append(errs, fmt.Sprintf("EVENTS_BACKEND: unsupported value %q", cfg.EventsBackend))
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		errs = append(errs, fmt.Sprintf("PORT: out of range %d", cfg.Port))
	}

	if len(errs) > 0 {
		return cfg, fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

// NeedsAWS reports whether any AWS-backed component is enabled.
func (c Config) NeedsAWS() bool {
	return c.DynamoDBEnabled || c.MetricsEnabled || c.EventsBackend == EventsBackendSQS
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("%s: %q is not an integer", key, v)
	}
	return n, nil
}

// getenvDuration accepts Go durations ("15s") or a bare number of seconds.
func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	if n, err := strconv.Atoi(v); err == nil && n >= 0 {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return def, fmt.Errorf("%s: %q is not a duration", key, v)
	}
	return d, nil
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}
