package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"bordados_admin/internal/domain/entities"
	"bordados_admin/internal/infrastructure/database"
	"bordados_admin/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"github.com/google/uuid"
)

const defaultGuardTableName = "order_operation_guards"

type guardItem struct {
	OrderID   string `dynamodbav:"order_id"`
	Token     string `dynamodbav:"token"`
	Operation string `dynamodbav:"operation"`
	CreatedAt string `dynamodbav:"created_at"`
	ExpiresAt int64  `dynamodbav:"expires_at"`
}

// DynamoOperationGuard shares the in-flight guard across instances.
//
// Table requirements:
//   - PK: order_id (string)
//   - TTL attribute: expires_at (unix seconds)
//
// An entry whose expires_at has passed is taken over even if DynamoDB has not
// yet removed it.
type DynamoOperationGuard struct {
	ddb       database.DynamoDBAPI
	tableName string
	ttl       time.Duration
	now       func() time.Time
}

var _ interfaces.IOperationGuard = (*DynamoOperationGuard)(nil)

func NewDynamoOperationGuard(ddb database.DynamoDBAPI, tableName string, ttl time.Duration) *DynamoOperationGuard {
	if tableName == "" {
		tableName = defaultGuardTableName
	}
	if ttl <= 0 {
		ttl = defaultGuardTTL
	}
	return &DynamoOperationGuard{ddb: ddb, tableName: tableName, ttl: ttl, now: time.Now}
}

func (g *DynamoOperationGuard) Acquire(ctx context.Context, orderID int64, operation string) (string, error) {
	now := g.now().UTC()
	it := guardItem{
		OrderID:   strconv.FormatInt(orderID, 10),
		Token:     uuid.NewString(),
		Operation: operation,
		CreatedAt: now.Format(time.RFC3339Nano),
		ExpiresAt: now.Add(g.ttl).Unix(),
	}
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return "", err
	}

	_, err = g.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(g.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#order_id) OR #expires_at < :now"),
		ExpressionAttributeNames: map[string]string{
			"#order_id":   "order_id",
			"#expires_at": "expires_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":now": &types.AttributeValueMemberN{Value: strconv.FormatInt(now.Unix(), 10)},
		},
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return "", entities.ErrOperationInFlight
		}
		return "", fmt.Errorf("acquire guard: %w", err)
	}
	return it.Token, nil
}

func (g *DynamoOperationGuard) Release(ctx context.Context, orderID int64, token string) error {
	_, err := g.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(g.tableName),
		Key: map[string]types.AttributeValue{
			"order_id": &types.AttributeValueMemberS{Value: strconv.FormatInt(orderID, 10)},
		},
		ConditionExpression: aws.String("#token = :token"),
		ExpressionAttributeNames: map[string]string{
			"#token": "token",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":token": &types.AttributeValueMemberS{Value: token},
		},
	})
	if err != nil {
		// Someone else took over an expired entry; nothing left to release.
		if isConditionalCheckFailed(err) {
			return nil
		}
		return fmt.Errorf("release guard: %w", err)
	}
	return nil
}

func isConditionalCheckFailed(err error) bool {
	var cfe *types.ConditionalCheckFailedException
	if errors.As(err, &cfe) {
		return true
	}
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "ConditionalCheckFailedException"
}
