package repository

import (
	"context"
	"strconv"
	"time"

	"bordados_admin/internal/domain/entities"
	"bordados_admin/internal/infrastructure/database"
	"bordados_admin/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

const defaultPricingAuditTableName = "order_pricing_audit"

type pricingItem struct {
	OrderID         string `dynamodbav:"order_id"`
	ClientID        int64  `dynamodbav:"client_id"`
	Subtotal        int64  `dynamodbav:"subtotal"`
	DiscountPercent string `dynamodbav:"discount_percent"`
	DiscountAmount  int64  `dynamodbav:"discount_amount"`
	FinalTotal      int64  `dynamodbav:"final_total"`
	CreatedAt       string `dynamodbav:"created_at"`
}

// PricingAuditDynamoRepository keeps the discount applied to each order.
//
// Table requirements:
//   - PK: order_id (string)
//
// Records are written once at order creation and never updated.
type PricingAuditDynamoRepository struct {
	ddb       database.DynamoDBAPI
	tableName string
}

var _ interfaces.IPricingAuditRepository = (*PricingAuditDynamoRepository)(nil)

func NewPricingAuditDynamoRepository(ddb database.DynamoDBAPI, tableName string) *PricingAuditDynamoRepository {
	if tableName == "" {
		tableName = defaultPricingAuditTableName
	}
	return &PricingAuditDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *PricingAuditDynamoRepository) Save(ctx context.Context, rec entities.PricingRecord) error {
	av, err := attributevalue.MarshalMap(toPricingItem(rec))
	if err != nil {
		return err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#order_id)"),
		ExpressionAttributeNames: map[string]string{
			"#order_id": "order_id",
		},
	})
	return err
}

func (r *PricingAuditDynamoRepository) GetByOrderID(ctx context.Context, orderID int64) (entities.PricingRecord, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"order_id": &types.AttributeValueMemberS{Value: strconv.FormatInt(orderID, 10)},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.PricingRecord{}, err
	}
	if len(out.Item) == 0 {
		return entities.PricingRecord{}, entities.ErrNotFound
	}

	var it pricingItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.PricingRecord{}, err
	}
	return fromPricingItem(it)
}

func toPricingItem(r entities.PricingRecord) pricingItem {
	return pricingItem{
		OrderID:         strconv.FormatInt(r.OrderID, 10),
		ClientID:        r.ClientID,
		Subtotal:        r.Subtotal,
		DiscountPercent: r.DiscountPercent.StringFixed(2),
		DiscountAmount:  r.DiscountAmount,
		FinalTotal:      r.FinalTotal,
		CreatedAt:       r.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromPricingItem(it pricingItem) (entities.PricingRecord, error) {
	id, err := strconv.ParseInt(it.OrderID, 10, 64)
	if err != nil {
		return entities.PricingRecord{}, err
	}
	pct, err := decimal.NewFromString(it.DiscountPercent)
	if err != nil {
		return entities.PricingRecord{}, err
	}
	created, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	return entities.PricingRecord{
		OrderID:         id,
		ClientID:        it.ClientID,
		Subtotal:        it.Subtotal,
		DiscountPercent: pct,
		DiscountAmount:  it.DiscountAmount,
		FinalTotal:      it.FinalTotal,
		CreatedAt:       created,
	}, nil
}
