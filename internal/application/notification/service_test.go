package notification

import (
	"context"
	"testing"
	"time"

	"github.com/go-catalog-nosql/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockNotificationStore struct{ mock.Mock }

func (m *mockNotificationStore) Put(ctx context.Context, n *domain.Notification) error {
	return m.Called(ctx, n).Error(0)
}
func (m *mockNotificationStore) List(ctx context.Context) ([]domain.Notification, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]domain.Notification)
	return items, args.Error(1)
}
func (m *mockNotificationStore) MarkAsRead(ctx context.Context, notificationID string) (*domain.Notification, error) {
	args := m.Called(ctx, notificationID)
	if n, _ := args.Get(0).(*domain.Notification); n != nil {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockNotificationStore) Delete(ctx context.Context, notificationID string) error {
	return m.Called(ctx, notificationID).Error(0)
}

func TestCreate_DefaultsToInfo(t *testing.T) {
	repo := &mockNotificationStore{}
	repo.On("Put", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.Type == domain.NotificationTypeInfo && n.Message == "hello" && !n.Read && n.NotificationID != ""
	})).Return(nil)

	n, err := NewService(repo).Create(context.Background(), domain.NotificationInput{Message: " hello "})
	require.NoError(t, err)
	assert.Equal(t, domain.NotificationTypeInfo, n.Type)
	repo.AssertExpectations(t)
}

func TestCreate_RejectsUnknownType(t *testing.T) {
	_, err := NewService(&mockNotificationStore{}).Create(context.Background(), domain.NotificationInput{Message: "x", Type: "promo"})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestCreate_RequiresMessage(t *testing.T) {
	_, err := NewService(&mockNotificationStore{}).Create(context.Background(), domain.NotificationInput{Type: "update"})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestList_NewestFirst(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	repo := &mockNotificationStore{}
	repo.On("List", mock.Anything).Return([]domain.Notification{
		{NotificationID: "a", CreatedAt: base},
		{NotificationID: "c", CreatedAt: base.Add(2 * time.Hour)},
		{NotificationID: "b", CreatedAt: base.Add(time.Hour)},
	}, nil)

	items, err := NewService(repo).List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "c", items[0].NotificationID)
	assert.Equal(t, "b", items[1].NotificationID)
	assert.Equal(t, "a", items[2].NotificationID)
}

func TestMarkAsRead_NotFound(t *testing.T) {
	repo := &mockNotificationStore{}
	repo.On("MarkAsRead", mock.Anything, "missing").Return(nil, domain.ErrNotFound)

	_, err := NewService(repo).MarkAsRead(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
