package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"bordados_admin/internal/domain/entities"
	"bordados_admin/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

// SQSAPI is the subset of *sqs.Client used by the publisher.
type SQSAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SQSEventPublisher sends order events to an SQS queue. On FIFO queues the
// order id is the message group, so events of one order stay ordered.
type SQSEventPublisher struct {
	sqs      SQSAPI
	queueURL string
}

var _ interfaces.IEventPublisher = (*SQSEventPublisher)(nil)

func NewSQSEventPublisher(client SQSAPI, queueURL string) *SQSEventPublisher {
	return &SQSEventPublisher{sqs: client, queueURL: queueURL}
}

func (p *SQSEventPublisher) Publish(ctx context.Context, event entities.OrderEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	orderID := strconv.FormatInt(event.OrderID, 10)

	input := &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.queueURL),
		MessageBody: aws.String(string(body)),
		MessageAttributes: map[string]sqstypes.MessageAttributeValue{
			"event_type": {DataType: aws.String("String"), StringValue: aws.String(string(event.Type))},
			"order_id":   {DataType: aws.String("Number"), StringValue: aws.String(orderID)},
		},
	}
	if strings.HasSuffix(p.queueURL, ".fifo") {
		input.MessageGroupId = aws.String(orderID)
		input.MessageDeduplicationId = aws.String(event.ID)
	}

	if _, err := p.sqs.SendMessage(ctx, input); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}
