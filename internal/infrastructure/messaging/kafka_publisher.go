package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"bordados_admin/internal/domain/entities"
	"bordados_admin/internal/usecase/interfaces"

	"github.com/IBM/sarama"
)

// KafkaEventPublisher writes order events to a topic keyed by order id.
// It uses a synchronous producer: Publish returns once the broker acked.
type KafkaEventPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

var _ interfaces.IEventPublisher = (*KafkaEventPublisher)(nil)

// NewKafkaProducerConfig is the producer configuration used in production.
func NewKafkaProducerConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForLocal
	cfg.Producer.Compression = sarama.CompressionSnappy
	cfg.Producer.Retry.Max = 5
	cfg.Producer.Return.Successes = true
	cfg.Producer.Timeout = 5 * time.Second
	return cfg
}

// DialKafkaEventPublisher connects to a comma separated broker list.
func DialKafkaEventPublisher(brokers, topic string) (*KafkaEventPublisher, error) {
	var addrs []string
	for _, b := range strings.Split(brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			addrs = append(addrs, b)
		}
	}
	if len(addrs) == 0 {
		return nil, fmt.Errorf("no kafka brokers configured")
	}
	producer, err := sarama.NewSyncProducer(addrs, NewKafkaProducerConfig())
	if err != nil {
		return nil, fmt.Errorf("start kafka producer: %w", err)
	}
	return NewKafkaEventPublisher(producer, topic), nil
}

func NewKafkaEventPublisher(producer sarama.SyncProducer, topic string) *KafkaEventPublisher {
	return &KafkaEventPublisher{producer: producer, topic: topic}
}

func (p *KafkaEventPublisher) Publish(_ context.Context, event entities.OrderEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(strconv.FormatInt(event.OrderID, 10)),
		Value: sarama.ByteEncoder(body),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(event.Type)},
		},
		Timestamp: event.OccurredAt,
	}
	if _, _, err := p.producer.SendMessage(msg); err != nil {
		return fmt.Errorf("send kafka message: %w", err)
	}
	return nil
}

func (p *KafkaEventPublisher) Close() error {
	return p.producer.Close()
}
