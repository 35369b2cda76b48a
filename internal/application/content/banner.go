package content

import (
	"context"
	"time"

	"github.com/go-catalog-nosql/internal/domain"
	"github.com/go-catalog-nosql/internal/pkg/id"
)

type BannerService interface {
	Create(ctx context.Context, img *domain.ImageUpload) (*domain.Banner, error)
	List(ctx context.Context) ([]domain.Banner, error)
	Get(ctx context.Context, bannerID string) (*domain.Banner, error)
	// Update always replaces the image; a banner has nothing else to change.
	Update(ctx context.Context, bannerID string, img *domain.ImageUpload) (*domain.Banner, error)
	Delete(ctx context.Context, bannerID string) error
}

type bannerService struct {
	repo   itemStore[domain.Banner]
	images imageStore
}

func NewBannerService(repo itemStore[domain.Banner], images imageStore) BannerService {
	return &bannerService{repo: repo, images: images}
}

func (s *bannerService) Create(ctx context.Context, img *domain.ImageUpload) (*domain.Banner, error) {
	key, url, err := storeImage(ctx, s.images, "banners", img)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	b := &domain.Banner{BannerID: id.New(), BannerImage: url, ImageKey: key, CreatedAt: now, UpdatedAt: now}
	if err := s.repo.Put(ctx, b); err != nil {
		dropImage(ctx, s.images, key)
		return nil, err
	}
	return b, nil
}

func (s *bannerService) List(ctx context.Context) ([]domain.Banner, error) {
	return s.repo.List(ctx)
}

func (s *bannerService) Get(ctx context.Context, bannerID string) (*domain.Banner, error) {
	return s.repo.Get(ctx, bannerID)
}

func (s *bannerService) Update(ctx context.Context, bannerID string, img *domain.ImageUpload) (*domain.Banner, error) {
	b, err := s.repo.Get(ctx, bannerID)
	if err != nil {
		return nil, err
	}
	key, url, err := storeImage(ctx, s.images, "banners", img)
	if err != nil {
		return nil, err
	}
	oldKey := b.ImageKey
	b.BannerImage, b.ImageKey, b.UpdatedAt = url, key, time.Now().UTC()
	if err := s.repo.Put(ctx, b); err != nil {
		dropImage(ctx, s.images, key)
		return nil, err
	}
	dropImage(ctx, s.images, oldKey)
	return b, nil
}

func (s *bannerService) Delete(ctx context.Context, bannerID string) error {
	b, err := s.repo.Get(ctx, bannerID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, bannerID); err != nil {
		return err
	}
	dropImage(ctx, s.images, b.ImageKey)
	return nil
}
