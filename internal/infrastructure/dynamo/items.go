package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/go-catalog-nosql/internal/domain"
)

// ItemTable stores whole records of T keyed by a single string attribute.
// The content tables are small and always read in full, so List scans.
type ItemTable[T any] struct {
	client    API
	tableName string
	keyAttr   string
	label     string
}

func NewItemTable[T any](client API, tableName, keyAttr, label string) *ItemTable[T] {
	return &ItemTable[T]{client: client, tableName: tableName, keyAttr: keyAttr, label: label}
}

func (t *ItemTable[T]) Put(ctx context.Context, item *T) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", t.label, err)
	}
	_, err = t.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(t.tableName),
		Item:      av,
	})
	return err
}

func (t *ItemTable[T]) Get(ctx context.Context, id string) (*T, error) {
	out, err := t.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(t.tableName),
		Key:       strKey(t.keyAttr, id),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("%s not found: %w", t.label, domain.ErrNotFound)
	}
	var item T
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (t *ItemTable[T]) List(ctx context.Context) ([]T, error) {
	return scanAll[T](ctx, t.client, t.tableName)
}

func (t *ItemTable[T]) Delete(ctx context.Context, id string) error {
	_, err := t.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:                aws.String(t.tableName),
		Key:                      strKey(t.keyAttr, id),
		ConditionExpression:      aws.String("attribute_exists(#k)"),
		ExpressionAttributeNames: map[string]string{"#k": t.keyAttr},
	})
	if isConditionFailed(err) {
		return fmt.Errorf("%s not found: %w", t.label, domain.ErrNotFound)
	}
	return err
}

// Content tables and their key attributes.
func NewCategoryTable(client API, tableName string) *ItemTable[domain.Category] {
	return NewItemTable[domain.Category](client, tableName, "category_id", "category")
}

func NewLogoTable(client API, tableName string) *ItemTable[domain.Logo] {
	return NewItemTable[domain.Logo](client, tableName, "logo_id", "logo")
}

func NewBannerTable(client API, tableName string) *ItemTable[domain.Banner] {
	return NewItemTable[domain.Banner](client, tableName, "banner_id", "banner")
}

func NewContainerTable(client API, tableName string) *ItemTable[domain.Container] {
	return NewItemTable[domain.Container](client, tableName, "container_id", "container")
}

func NewDueDateTable(client API, tableName string) *ItemTable[domain.DueDate] {
	return NewItemTable[domain.DueDate](client, tableName, "due_date_id", "due date")
}

func NewJobTable(client API, tableName string) *ItemTable[domain.Job] {
	return NewItemTable[domain.Job](client, tableName, "job_id", "job")
}
