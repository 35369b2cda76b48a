// Package content manages the marketing records shown in the app. Every
// record carries one image kept in object storage.
package content

import (
	"context"
	"log/slog"

	"github.com/go-catalog-nosql/internal/domain"
)

// itemStore is the persistence contract shared by all content tables.
type itemStore[T any] interface {
	Put(ctx context.Context, item *T) error
	Get(ctx context.Context, id string) (*T, error)
	List(ctx context.Context) ([]T, error)
	Delete(ctx context.Context, id string) error
}

type imageStore interface {
	Upload(ctx context.Context, prefix string, img *domain.ImageUpload) (key, url string, err error)
	Delete(ctx context.Context, key string) error
}

// storeImage validates and uploads img under prefix.
func storeImage(ctx context.Context, images imageStore, prefix string, img *domain.ImageUpload) (string, string, error) {
	if err := img.Validate(); err != nil {
		return "", "", err
	}
	return images.Upload(ctx, prefix, img)
}

// dropImage removes an object that is no longer referenced. Failures only leave an orphan behind.
func dropImage(ctx context.Context, images imageStore, key string) {
	if key == "" {
		return
	}
	if err := images.Delete(ctx, key); err != nil {
		slog.Warn("failed to delete image object", "key", key, "err", err)
	}
}
