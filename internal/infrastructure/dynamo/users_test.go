package dynamo

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-catalog-nosql/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newUser() *domain.User {
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	return &domain.User{UserID: "u1", FullName: "Asha", Email: "asha@example.com", PhoneNumber: "+15550100001", PasswordHash: "h", IsVerified: true, CreatedAt: now, UpdatedAt: now}
}

func TestUserRepoCreate_WritesUserAndMarkers(t *testing.T) {
	db := &mockDynamo{}
	db.On("TransactWriteItems", mock.Anything, mock.MatchedBy(func(in *dynamodb.TransactWriteItemsInput) bool {
		if len(in.TransactItems) != 3 {
			return false
		}
		email := in.TransactItems[1].Put.Item[fieldIdentity].(*types.AttributeValueMemberS).Value
		phone := in.TransactItems[2].Put.Item[fieldIdentity].(*types.AttributeValueMemberS).Value
		return *in.TransactItems[0].Put.TableName == "users" &&
			email == "email#asha@example.com" &&
			phone == "phone_number#+15550100001" &&
			*in.TransactItems[1].Put.TableName == "user_identities"
	})).Return(&dynamodb.TransactWriteItemsOutput{}, nil)

	require.NoError(t, NewUserRepo(db, "users", "user_identities").Create(context.Background(), newUser()))
	db.AssertExpectations(t)
}

func TestUserRepoCreate_CanceledIsConflict(t *testing.T) {
	db := &mockDynamo{}
	db.On("TransactWriteItems", mock.Anything, mock.Anything).
		Return(nil, &types.TransactionCanceledException{Message: strp("ConditionalCheckFailed")})

	err := NewUserRepo(db, "users", "user_identities").Create(context.Background(), newUser())
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUserRepoGet_Missing(t *testing.T) {
	db := &mockDynamo{}
	db.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{}, nil)

	_, err := NewUserRepo(db, "users", "user_identities").Get(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepoGetByPhone_UsesIndex(t *testing.T) {
	item, err := attributevalue.MarshalMap(newUser())
	require.NoError(t, err)
	db := &mockDynamo{}
	db.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
		return *in.IndexName == indexPhoneNumber && in.ExpressionAttributeNames["#a"] == fieldPhoneNumber
	})).Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{item}}, nil)

	u, err := NewUserRepo(db, "users", "user_identities").GetByPhone(context.Background(), "+15550100001")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.UserID)
	assert.Equal(t, "h", u.PasswordHash)
}

func TestUserRepoGetByEmail_NoMatch(t *testing.T) {
	db := &mockDynamo{}
	db.On("Query", mock.Anything, mock.Anything).Return(&dynamodb.QueryOutput{}, nil)

	_, err := NewUserRepo(db, "users", "user_identities").GetByEmail(context.Background(), "x@y.z")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepoUpdate_MissingUser(t *testing.T) {
	db := &mockDynamo{}
	db.On("UpdateItem", mock.Anything, mock.Anything).
		Return(nil, &types.ConditionalCheckFailedException{Message: strp("failed")})

	err := NewUserRepo(db, "users", "user_identities").UpdatePassword(context.Background(), "u1", "newhash")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepoUpdate_StampsUpdatedAtWithoutMutatingInput(t *testing.T) {
	db := &mockDynamo{}
	db.On("UpdateItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.UpdateItemInput) bool {
		return in.ExpressionAttributeNames["#f0"] == "full_name" && in.ExpressionAttributeNames["#f1"] == fieldUpdatedAt
	})).Return(&dynamodb.UpdateItemOutput{}, nil)

	updates := map[string]any{"full_name": "Asha Rao"}
	require.NoError(t, NewUserRepo(db, "users", "user_identities").Update(context.Background(), "u1", updates))
	assert.Len(t, updates, 1)
	db.AssertExpectations(t)
}

func TestUserRepoUpdateWithIdentities_MovesMarker(t *testing.T) {
	db := &mockDynamo{}
	db.On("TransactWriteItems", mock.Anything, mock.MatchedBy(func(in *dynamodb.TransactWriteItemsInput) bool {
		if len(in.TransactItems) != 3 || in.TransactItems[0].Update == nil {
			return false
		}
		del := in.TransactItems[1].Delete.Key[fieldIdentity].(*types.AttributeValueMemberS).Value
		put := in.TransactItems[2].Put.Item[fieldIdentity].(*types.AttributeValueMemberS).Value
		return del == "email#old@example.com" && put == "email#new@example.com"
	})).Return(&dynamodb.TransactWriteItemsOutput{}, nil)

	err := NewUserRepo(db, "users", "user_identities").UpdateWithIdentities(context.Background(), "u1",
		map[string]any{fieldEmail: "new@example.com"},
		[]domain.IdentityChange{{Attr: fieldEmail, Old: "old@example.com", New: "new@example.com"}})
	require.NoError(t, err)
	db.AssertExpectations(t)
}

func TestUserRepoDelete_RemovesMarkers(t *testing.T) {
	db := &mockDynamo{}
	db.On("TransactWriteItems", mock.Anything, mock.MatchedBy(func(in *dynamodb.TransactWriteItemsInput) bool {
		return len(in.TransactItems) == 3 && in.TransactItems[1].Delete != nil && in.TransactItems[2].Delete != nil
	})).Return(&dynamodb.TransactWriteItemsOutput{}, nil)

	require.NoError(t, NewUserRepo(db, "users", "user_identities").Delete(context.Background(), newUser()))
	db.AssertExpectations(t)
}

func strp(s string) *string { return &s }
