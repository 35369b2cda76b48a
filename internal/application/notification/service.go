package notification

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/go-catalog-nosql/internal/domain"
	"github.com/go-catalog-nosql/internal/pkg/id"
	"github.com/go-catalog-nosql/internal/pkg/validate"
)

type Service interface {
	Create(ctx context.Context, in domain.NotificationInput) (*domain.Notification, error)
	List(ctx context.Context) ([]domain.Notification, error)
	MarkAsRead(ctx context.Context, notificationID string) (*domain.Notification, error)
	Delete(ctx context.Context, notificationID string) error
}

type notificationStore interface {
	Put(ctx context.Context, n *domain.Notification) error
	List(ctx context.Context) ([]domain.Notification, error)
	MarkAsRead(ctx context.Context, notificationID string) (*domain.Notification, error)
	Delete(ctx context.Context, notificationID string) error
}

type service struct {
	repo notificationStore
}

func NewService(repo notificationStore) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, in domain.NotificationInput) (*domain.Notification, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	typ := in.Type
	if typ == "" {
		typ = domain.NotificationTypeInfo
	}
	now := time.Now().UTC()
	n := &domain.Notification{
		NotificationID: id.New(),
		Message:        strings.TrimSpace(in.Message),
		Type:           typ,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Put(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// List returns every notification, newest first.
func (s *service) List(ctx context.Context) ([]domain.Notification, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *service) MarkAsRead(ctx context.Context, notificationID string) (*domain.Notification, error) {
	return s.repo.MarkAsRead(ctx, notificationID)
}

func (s *service) Delete(ctx context.Context, notificationID string) error {
	return s.repo.Delete(ctx, notificationID)
}
