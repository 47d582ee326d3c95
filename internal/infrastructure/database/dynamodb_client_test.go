package database

import (
	"context"
	"testing"
)

func TestLoadAWSConfig(t *testing.T) {
	t.Run("default region", func(t *testing.T) {
		cfg, err := LoadAWSConfig(context.Background(), AWSOptions{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Region != "us-east-1" {
			t.Fatalf("expected us-east-1, got %s", cfg.Region)
		}
	})

	t.Run("local endpoint uses static credentials", func(t *testing.T) {
		t.Setenv("AWS_ACCESS_KEY_ID", "")
		t.Setenv("AWS_SECRET_ACCESS_KEY", "")
		cfg, err := LoadAWSConfig(context.Background(), AWSOptions{Region: "sa-east-1", Endpoint: "http://localhost:8000"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		creds, err := cfg.Credentials.Retrieve(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if creds.AccessKeyID != "local" {
			t.Fatalf("expected local credentials, got %s", creds.AccessKeyID)
		}
		if NewDynamoDBClient(cfg, "http://localhost:8000") == nil {
			t.Fatalf("expected client")
		}
	})
}
