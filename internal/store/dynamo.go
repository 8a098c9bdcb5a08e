package store

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/coccyx/gogen-api/internal/logger"
	"github.com/coccyx/gogen-api/internal/registry"
)

// keyAttribute is the item store's partition key, holding the profile id.
const keyAttribute = "gogen"

// DynamoAPI is the subset of the DynamoDB client the store uses.
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// DynamoStore is the DynamoDB-backed item store.
type DynamoStore struct {
	client DynamoAPI
	table  string
}

var _ ItemStore = (*DynamoStore)(nil)

// NewDynamoStore creates an item store over the given client and table.
func NewDynamoStore(client DynamoAPI, table string) *DynamoStore {
	return &DynamoStore{
		client: client,
		table:  table,
	}
}

// Get implements ItemStore.
func (s *DynamoStore) Get(ctx context.Context, id string) (*registry.Profile, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			keyAttribute: &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: getting item %q: %v", registry.ErrUpstreamUnavailable, id, err)
	}
	if len(out.Item) == 0 {
		return nil, fmt.Errorf("%w: %s", registry.ErrNotFound, id)
	}

	var p registry.Profile
	if err := attributevalue.UnmarshalMap(out.Item, &p); err != nil {
		// A stored record we cannot decode is treated as absent.
		logger.Warnf("Discarding malformed record for %q: %v", id, err)
		return nil, fmt.Errorf("%w: %s", registry.ErrNotFound, id)
	}
	if p.Gogen == "" {
		return nil, fmt.Errorf("%w: %s", registry.ErrNotFound, id)
	}
	return &p, nil
}

// Put implements ItemStore. Empty-string fields are dropped by the
// omitempty marshal tags, so they are never stored as "".
func (s *DynamoStore) Put(ctx context.Context, p registry.Profile) error {
	item, err := attributevalue.MarshalMap(p)
	if err != nil {
		return fmt.Errorf("marshaling profile %q: %w", p.Gogen, err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("%w: putting item %q: %v", registry.ErrUpstreamUnavailable, p.Gogen, err)
	}
	return nil
}

// ScanPage implements ItemStore. The projection is limited to the summary
// attributes; an optional query is applied as a server-side substring filter
// on each page, so a filtered page may carry fewer than PageSize items.
func (s *DynamoStore) ScanPage(ctx context.Context, req ScanRequest) (ScanResult, error) {
	builder := expression.NewBuilder().WithProjection(
		expression.NamesList(expression.Name(keyAttribute), expression.Name("description")),
	)
	if req.Query != "" {
		builder = builder.WithFilter(
			expression.Contains(expression.Name(keyAttribute), req.Query).
				Or(expression.Contains(expression.Name("description"), req.Query)),
		)
	}
	expr, err := builder.Build()
	if err != nil {
		return ScanResult{}, fmt.Errorf("building scan expression: %w", err)
	}

	out, err := s.client.Scan(ctx, &dynamodb.ScanInput{
		TableName:                 aws.String(s.table),
		Limit:                     aws.Int32(PageSize),
		ProjectionExpression:      expr.Projection(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ExclusiveStartKey:         req.StartKey,
	})
	if err != nil {
		return ScanResult{}, fmt.Errorf("%w: scanning table %q: %v", registry.ErrUpstreamUnavailable, s.table, err)
	}

	items := make([]registry.Summary, 0, len(out.Items))
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return ScanResult{}, fmt.Errorf("decoding scan page: %w", err)
	}

	var next Cursor
	if len(out.LastEvaluatedKey) > 0 {
		next = out.LastEvaluatedKey
	}
	return ScanResult{Items: items, NextKey: next}, nil
}
