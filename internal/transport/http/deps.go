package http

import (
	"context"

	"github.com/go-catalog-nosql/internal/application/verification"
	"github.com/go-catalog-nosql/internal/domain"
)

// UserRepository is the minimal interface the router requires from a user store.
type UserRepository interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	// Create writes the account and its identity markers in one transaction.
	Create(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, userID string, updates map[string]any) error
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	UpdateWithIdentities(ctx context.Context, userID string, updates map[string]any, changes []domain.IdentityChange) error
	Delete(ctx context.Context, u *domain.User) error
}

// NotificationRepository is the minimal interface the router requires from a notification store.
type NotificationRepository interface {
	Put(ctx context.Context, n *domain.Notification) error
	List(ctx context.Context) ([]domain.Notification, error)
	MarkAsRead(ctx context.Context, notificationID string) (*domain.Notification, error)
	Delete(ctx context.Context, notificationID string) error
}

// ItemRepository is the table contract shared by every content resource.
type ItemRepository[T any] interface {
	Put(ctx context.Context, item *T) error
	Get(ctx context.Context, id string) (*T, error)
	List(ctx context.Context) ([]T, error)
	Delete(ctx context.Context, id string) error
}

// ImageStore is the minimal interface the router requires from an object storage backend.
type ImageStore interface {
	Upload(ctx context.Context, prefix string, img *domain.ImageUpload) (key, url string, err error)
	Delete(ctx context.Context, key string) error
}

// SMSSender delivers codes to phone numbers.
type SMSSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

// Mailer delivers codes to email addresses.
type Mailer interface {
	SendEmail(to, subject, body string) error
}

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo         UserRepository
	NotificationRepo NotificationRepository
	Categories       ItemRepository[domain.Category]
	Logos            ItemRepository[domain.Logo]
	Banners          ItemRepository[domain.Banner]
	Containers       ItemRepository[domain.Container]
	DueDates         ItemRepository[domain.DueDate]
	Jobs             ItemRepository[domain.Job]
	Images           ImageStore
	Challenges       *verification.Store
	Mailer           Mailer
	SMSSender        SMSSender
}
