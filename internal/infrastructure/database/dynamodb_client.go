package database

import (
	"context"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// DynamoDBAPI is the subset of *dynamodb.Client used by the guard and audit
// stores. Tests substitute an in-memory implementation.
type DynamoDBAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

var _ DynamoDBAPI = (*dynamodb.Client)(nil)

// AWSOptions configures the shared AWS SDK config.
//
// Endpoint is optional and only applies to DynamoDB (e.g. a local
// dynamodb container at http://dynamodb:8000).
type AWSOptions struct {
	Region   string
	Endpoint string
}

// LoadAWSConfig builds the SDK config shared by DynamoDB, SQS and CloudWatch.
//
// When a local DynamoDB endpoint is set, static "local" credentials are used
// unless AWS_ACCESS_KEY_ID/AWS_SECRET_ACCESS_KEY are present.
func LoadAWSConfig(ctx context.Context, opts AWSOptions) (aws.Config, error) {
	region := opts.Region
	if region == "" {
		region = "us-east-1"
	}
	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(region),
	}
	if opts.Endpoint != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			getenvDefault("AWS_ACCESS_KEY_ID", "local"),
			getenvDefault("AWS_SECRET_ACCESS_KEY", "local"),
			"",
		)))
	}
	return config.LoadDefaultConfig(ctx, loadOpts...)
}

// NewDynamoDBClient returns a client honouring the optional endpoint override.
func NewDynamoDBClient(cfg aws.Config, endpoint string) *dynamodb.Client {
	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
