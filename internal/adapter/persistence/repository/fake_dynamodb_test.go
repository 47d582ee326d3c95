package repository

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeDynamo is a small in-memory table keyed by order_id. It understands the
// condition expressions used by the guard and the pricing audit store.
type fakeDynamo struct {
	mu    sync.Mutex
	items map[string]map[string]types.AttributeValue
	err   error
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{items: map[string]map[string]types.AttributeValue{}}
}

func keyOf(m map[string]types.AttributeValue) string {
	if s, ok := m["order_id"].(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

func numberOf(av types.AttributeValue) int64 {
	if n, ok := av.(*types.AttributeValueMemberN); ok {
		v, _ := strconv.ParseInt(n.Value, 10, 64)
		return v
	}
	return 0
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	k := keyOf(in.Item)
	if k == "" {
		return nil, errors.New("missing key")
	}
	existing, exists := f.items[k]
	if in.ConditionExpression != nil && exists {
		switch *in.ConditionExpression {
		case "attribute_not_exists(#order_id)":
			return nil, &types.ConditionalCheckFailedException{}
		case "attribute_not_exists(#order_id) OR #expires_at < :now":
			if numberOf(existing["expires_at"]) >= numberOf(in.ExpressionAttributeValues[":now"]) {
				return nil, &types.ConditionalCheckFailedException{}
			}
		}
	}
	f.items[k] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return &dynamodb.GetItemOutput{Item: f.items[keyOf(in.Key)]}, nil
}

func (f *fakeDynamo) DeleteItem(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	k := keyOf(in.Key)
	existing, ok := f.items[k]
	if !ok {
		return nil, &types.ConditionalCheckFailedException{}
	}
	if in.ConditionExpression != nil && *in.ConditionExpression == "#token = :token" {
		want := in.ExpressionAttributeValues[":token"].(*types.AttributeValueMemberS).Value
		got, _ := existing["token"].(*types.AttributeValueMemberS)
		if got == nil || got.Value != want {
			return nil, &types.ConditionalCheckFailedException{}
		}
	}
	delete(f.items, k)
	return &dynamodb.DeleteItemOutput{}, nil
}
