// Package dynamoflavor implements a registry store on DynamoDB.
package dynamoflavor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/goforj/flavors/flavorcore"
)

const (
	defaultPrefix = "flavors"
	defaultRegion = "us-east-1"
	defaultTable  = "flavor_entries"

	ensureTableMaxAttempts = 20
	ensureTableRetryDelay  = 150 * time.Millisecond
)

// DynamoAPI captures the subset of DynamoDB client methods used by the store.
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// Config configures a DynamoDB-backed registry store.
type Config struct {
	flavorcore.BaseConfig
	Client   DynamoAPI
	Endpoint string
	Region   string
	Table    string
}

type store struct {
	client DynamoAPI
	table  string
	prefix string
}

// New builds a DynamoDB-backed flavorcore.Store and ensures its table.
//
// Defaults:
// - Region: "us-east-1" when empty
// - Table: "flavor_entries" when empty
// - Prefix: "flavors" when empty
// - Client: auto-created when nil (uses Region and optional Endpoint)
func New(ctx context.Context, cfg Config) (flavorcore.Store, error) {
	if cfg.Region == "" {
		cfg.Region = defaultRegion
	}
	if cfg.Table == "" {
		cfg.Table = defaultTable
	}
	if cfg.Prefix == "" {
		cfg.Prefix = defaultPrefix
	}
	if cfg.Client == nil {
		client, err := newClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		cfg.Client = client
	}
	if err := ensureTable(ctx, cfg.Client, cfg.Table); err != nil {
		return nil, err
	}
	return &store{
		client: cfg.Client,
		table:  cfg.Table,
		prefix: cfg.Prefix,
	}, nil
}

func newClient(ctx context.Context, cfg Config) (*dynamodb.Client, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("dummy", "dummy", "")),
	)
	if err != nil {
		return nil, err
	}
	if cfg.Endpoint != "" {
		resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
			return aws.Endpoint{URL: cfg.Endpoint, HostnameImmutable: true}, nil
		})
		if _, err := resolver.ResolveEndpoint("dynamodb", cfg.Region); err != nil {
			return nil, err
		}
		awsCfg.EndpointResolverWithOptions = resolver
	}
	return dynamodb.NewFromConfig(awsCfg), nil
}

func ensureTable(ctx context.Context, client DynamoAPI, table string) error {
	_, err := client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(table)})
	if err == nil {
		return nil
	}
	var notFound *types.ResourceNotFoundException
	if !errors.As(err, &notFound) {
		return err
	}

	_, err = client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(table),
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("k"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("k"), KeyType: types.KeyTypeHash},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	if err != nil {
		var exists *types.ResourceInUseException
		if !errors.As(err, &exists) {
			return err
		}
	}

	for attempt := 0; attempt < ensureTableMaxAttempts; attempt++ {
		out, err := client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(table)})
		if err == nil && out.Table != nil && out.Table.TableStatus == types.TableStatusActive {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(ensureTableRetryDelay):
		}
	}
	return fmt.Errorf("dynamodb table %q not active", table)
}

func (s *store) Driver() flavorcore.Driver { return flavorcore.DriverDynamo }

func (s *store) Get(ctx context.Context, name string) ([]byte, bool, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key:       map[string]types.AttributeValue{"k": &types.AttributeValueMemberS{Value: s.entryKey(name)}},
	})
	if err != nil {
		return nil, false, err
	}
	if out.Item == nil {
		return nil, false, nil
	}
	v, ok := out.Item["v"].(*types.AttributeValueMemberB)
	if !ok {
		return nil, false, errors.New("dynamodb item missing binary value")
	}
	return cloneBytes(v.Value), true, nil
}

func (s *store) Add(ctx context.Context, name string, body []byte) (bool, error) {
	_, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item: map[string]types.AttributeValue{
			"k": &types.AttributeValueMemberS{Value: s.entryKey(name)},
			"v": &types.AttributeValueMemberB{Value: cloneBytes(body)},
		},
		ConditionExpression: aws.String("attribute_not_exists(k)"),
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *store) Count(ctx context.Context) (int64, error) {
	names, err := s.Names(ctx)
	if err != nil {
		return 0, err
	}
	return int64(len(names)), nil
}

func (s *store) Names(ctx context.Context) ([]string, error) {
	scope := s.entryKey("")
	var names []string
	var startKey map[string]types.AttributeValue
	for {
		out, err := s.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:                 aws.String(s.table),
			ProjectionExpression:      aws.String("k"),
			FilterExpression:          aws.String("begins_with(k, :scope)"),
			ExpressionAttributeValues: map[string]types.AttributeValue{":scope": &types.AttributeValueMemberS{Value: scope}},
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return nil, err
		}
		for _, item := range out.Items {
			k, ok := item["k"].(*types.AttributeValueMemberS)
			if !ok {
				continue
			}
			names = append(names, strings.TrimPrefix(k.Value, scope))
		}
		if out.LastEvaluatedKey == nil {
			return names, nil
		}
		startKey = out.LastEvaluatedKey
	}
}

func (s *store) entryKey(name string) string {
	return s.prefix + ":" + name
}

func cloneBytes(value []byte) []byte {
	if value == nil {
		return nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out
}
