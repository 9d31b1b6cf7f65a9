package dynamo

import (
	"fmt"

	"horseadmin/config"
	"horseadmin/infrastructure/persistence"
	"horseadmin/pkg/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	theorydb "github.com/theory-cloud/tabletheory"
	"github.com/theory-cloud/tabletheory/pkg/core"
	"github.com/theory-cloud/tabletheory/pkg/session"
	"go.uber.org/zap"
)

// SessionConfig translates the application settings. Static keys are used
// when both are set (DynamoDB Local); otherwise the default AWS chain.
func SessionConfig(cfg config.DynamoDBConfig) session.Config {
	out := session.Config{
		Region:   cfg.Region,
		Endpoint: cfg.Endpoint,
	}
	if out.Region == "" {
		out.Region = "us-east-1"
	}
	out.AWSConfigOptions = append(out.AWSConfigOptions, awsconfig.WithRegion(out.Region))
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		provider := aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		)
		out.CredentialsProvider = provider
		out.AWSConfigOptions = append(out.AWSConfigOptions, awsconfig.WithCredentialsProvider(provider))
	}
	return out
}

// Connect opens the TableTheory client and, when configured, creates any
// missing tables.
func Connect(cfg config.DynamoDBConfig) (core.ExtendedDB, error) {
	db, err := theorydb.New(SessionConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to dynamodb: %w", err)
	}
	logger.Info("DynamoDB client ready",
		zap.String("region", cfg.Region),
		zap.String("endpoint", cfg.Endpoint),
	)

	if cfg.CreateTables {
		if err := CreateTables(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// CreateTables ensures one table per model exists.
func CreateTables(db core.ExtendedDB) error {
	models := persistence.Models()
	for _, m := range models {
		if err := db.EnsureTable(m); err != nil {
			return fmt.Errorf("failed to ensure table for %T: %w", m, err)
		}
	}
	logger.Info("DynamoDB tables ensured", zap.Int("tables", len(models)))
	return nil
}
