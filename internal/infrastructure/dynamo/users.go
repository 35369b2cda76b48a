package dynamo

import (
	"context"
	"fmt"
	"maps"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-catalog-nosql/internal/domain"
)

// UserRepo provides typed DynamoDB operations for the users table.
//
// Email and phone uniqueness is held by marker items in a second table,
// keyed "<attr>#<value>", written in the same transaction as the user.
type UserRepo struct {
	client        API
	tableName     string
	identityTable string
}

func NewUserRepo(client API, tableName, identityTable string) *UserRepo {
	return &UserRepo{client: client, tableName: tableName, identityTable: identityTable}
}

func identityKey(attr, value string) string {
	return attr + "#" + value
}

func (r *UserRepo) putIdentity(attr, value, userID string) types.TransactWriteItem {
	return types.TransactWriteItem{Put: &types.Put{
		TableName: aws.String(r.identityTable),
		Item: map[string]types.AttributeValue{
			fieldIdentity: &types.AttributeValueMemberS{Value: identityKey(attr, value)},
			fieldUserID:   &types.AttributeValueMemberS{Value: userID},
		},
		ConditionExpression:      aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": fieldIdentity},
	}}
}

func (r *UserRepo) deleteIdentity(attr, value string) types.TransactWriteItem {
	return types.TransactWriteItem{Delete: &types.Delete{
		TableName: aws.String(r.identityTable),
		Key:       strKey(fieldIdentity, identityKey(attr, value)),
	}}
}

// Create writes the user and claims its email and phone. ErrConflict means
// another account got there first.
func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	item, err := attributevalue.MarshalMap(u)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	_, err = r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{
				TableName:           aws.String(r.tableName),
				Item:                item,
				ConditionExpression: aws.String("attribute_not_exists(user_id)"),
			}},
			r.putIdentity(fieldEmail, u.Email, u.UserID),
			r.putIdentity(fieldPhoneNumber, u.PhoneNumber, u.UserID),
		},
	})
	if isTxCanceled(err) {
		return fmt.Errorf("email or phone number already registered: %w", domain.ErrConflict)
	}
	return err
}

func (r *UserRepo) Get(ctx context.Context, userID string) (*domain.User, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey(fieldUserID, userID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	var u domain.User
	if err := attributevalue.UnmarshalMap(out.Item, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.queryGSI(ctx, indexEmail, fieldEmail, email)
}

func (r *UserRepo) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return r.queryGSI(ctx, indexPhoneNumber, fieldPhoneNumber, phone)
}

func (r *UserRepo) updateInput(userID string, updates map[string]any) (*dynamodb.UpdateItemInput, error) {
	fields := maps.Clone(updates)
	if fields == nil {
		fields = map[string]any{}
	}
	fields[fieldUpdatedAt] = time.Now().UTC()
	ue, err := buildUpdateExpr(fields)
	if err != nil {
		return nil, err
	}
	return &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey(fieldUserID, userID),
		UpdateExpression:          aws.String(ue.Expr),
		ConditionExpression:       aws.String("attribute_exists(user_id)"),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	}, nil
}

// Update sets plain attributes on an existing user. It must not be used for
// email or phone_number; see UpdateWithIdentities.
func (r *UserRepo) Update(ctx context.Context, userID string, updates map[string]any) error {
	in, err := r.updateInput(userID, updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, in)
	if isConditionFailed(err) {
		return fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	return err
}

func (r *UserRepo) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	return r.Update(ctx, userID, map[string]any{fieldPasswordHash: passwordHash})
}

// UpdateWithIdentities applies updates and moves identity markers in one transaction.
func (r *UserRepo) UpdateWithIdentities(ctx context.Context, userID string, updates map[string]any, changes []domain.IdentityChange) error {
	in, err := r.updateInput(userID, updates)
	if err != nil {
		return err
	}
	items := []types.TransactWriteItem{{Update: &types.Update{
		TableName:                 in.TableName,
		Key:                       in.Key,
		UpdateExpression:          in.UpdateExpression,
		ConditionExpression:       in.ConditionExpression,
		ExpressionAttributeNames:  in.ExpressionAttributeNames,
		ExpressionAttributeValues: in.ExpressionAttributeValues,
	}}}
	for _, c := range changes {
		if c.Old != "" {
			items = append(items, r.deleteIdentity(c.Attr, c.Old))
		}
		items = append(items, r.putIdentity(c.Attr, c.New, userID))
	}
	_, err = r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if isTxCanceled(err) {
		return fmt.Errorf("identity already in use or user missing: %w", domain.ErrConflict)
	}
	return err
}

// Delete removes the user together with its identity markers.
func (r *UserRepo) Delete(ctx context.Context, u *domain.User) error {
	items := []types.TransactWriteItem{{Delete: &types.Delete{
		TableName:           aws.String(r.tableName),
		Key:                 strKey(fieldUserID, u.UserID),
		ConditionExpression: aws.String("attribute_exists(user_id)"),
	}}}
	if u.Email != "" {
		items = append(items, r.deleteIdentity(fieldEmail, u.Email))
	}
	if u.PhoneNumber != "" {
		items = append(items, r.deleteIdentity(fieldPhoneNumber, u.PhoneNumber))
	}
	_, err := r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if isTxCanceled(err) {
		return fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	return err
}

func (r *UserRepo) queryGSI(ctx context.Context, index, attr, value string) (*domain.User, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(index),
		KeyConditionExpression:    aws.String("#a = :v"),
		ExpressionAttributeNames:  map[string]string{"#a": attr},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: value}},
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	var u domain.User
	if err := attributevalue.UnmarshalMap(out.Items[0], &u); err != nil {
		return nil, err
	}
	return &u, nil
}
