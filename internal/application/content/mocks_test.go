package content

import (
	"context"
	"strings"

	"github.com/go-catalog-nosql/internal/domain"
	"github.com/stretchr/testify/mock"
)

type mockItemStore[T any] struct{ mock.Mock }

func (m *mockItemStore[T]) Put(ctx context.Context, item *T) error {
	return m.Called(ctx, item).Error(0)
}
func (m *mockItemStore[T]) Get(ctx context.Context, id string) (*T, error) {
	args := m.Called(ctx, id)
	if v, _ := args.Get(0).(*T); v != nil {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockItemStore[T]) List(ctx context.Context) ([]T, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]T)
	return items, args.Error(1)
}
func (m *mockItemStore[T]) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockImageStore struct{ mock.Mock }

func (m *mockImageStore) Upload(ctx context.Context, prefix string, img *domain.ImageUpload) (string, string, error) {
	args := m.Called(ctx, prefix, img)
	return args.String(0), args.String(1), args.Error(2)
}
func (m *mockImageStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func pngUpload() *domain.ImageUpload {
	body := "\x89PNG fake"
	return &domain.ImageUpload{Filename: "a.png", ContentType: "image/png", Size: int64(len(body)), Body: strings.NewReader(body)}
}
