package content

import (
	"context"
	"strings"
	"time"

	"github.com/go-catalog-nosql/internal/domain"
	"github.com/go-catalog-nosql/internal/pkg/id"
	"github.com/go-catalog-nosql/internal/pkg/validate"
)

type LogoService interface {
	Create(ctx context.Context, in domain.LogoInput, img *domain.ImageUpload) (*domain.Logo, error)
	List(ctx context.Context) ([]domain.Logo, error)
	Get(ctx context.Context, logoID string) (*domain.Logo, error)
	Update(ctx context.Context, logoID string, in domain.LogoInput, img *domain.ImageUpload) (*domain.Logo, error)
	Delete(ctx context.Context, logoID string) error
}

type logoService struct {
	repo   itemStore[domain.Logo]
	images imageStore
}

func NewLogoService(repo itemStore[domain.Logo], images imageStore) LogoService {
	return &logoService{repo: repo, images: images}
}

func (s *logoService) Create(ctx context.Context, in domain.LogoInput, img *domain.ImageUpload) (*domain.Logo, error) {
	in.CategoryName = strings.TrimSpace(in.CategoryName)
	in.LogoName = strings.TrimSpace(in.LogoName)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	key, url, err := storeImage(ctx, s.images, "logos", img)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	l := &domain.Logo{
		LogoID:       id.New(),
		CategoryName: in.CategoryName,
		LogoName:     in.LogoName,
		LogoImage:    url,
		ImageKey:     key,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Put(ctx, l); err != nil {
		dropImage(ctx, s.images, key)
		return nil, err
	}
	return l, nil
}

func (s *logoService) List(ctx context.Context) ([]domain.Logo, error) {
	return s.repo.List(ctx)
}

func (s *logoService) Get(ctx context.Context, logoID string) (*domain.Logo, error) {
	return s.repo.Get(ctx, logoID)
}

func (s *logoService) Update(ctx context.Context, logoID string, in domain.LogoInput, img *domain.ImageUpload) (*domain.Logo, error) {
	l, err := s.repo.Get(ctx, logoID)
	if err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(in.CategoryName); v != "" {
		l.CategoryName = v
	}
	if v := strings.TrimSpace(in.LogoName); v != "" {
		l.LogoName = v
	}
	var oldKey, newKey string
	if img != nil {
		key, url, err := storeImage(ctx, s.images, "logos", img)
		if err != nil {
			return nil, err
		}
		oldKey, newKey = l.ImageKey, key
		l.ImageKey, l.LogoImage = key, url
	}
	l.UpdatedAt = time.Now().UTC()
	if err := s.repo.Put(ctx, l); err != nil {
		dropImage(ctx, s.images, newKey)
		return nil, err
	}
	dropImage(ctx, s.images, oldKey)
	return l, nil
}

func (s *logoService) Delete(ctx context.Context, logoID string) error {
	l, err := s.repo.Get(ctx, logoID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, logoID); err != nil {
		return err
	}
	dropImage(ctx, s.images, l.ImageKey)
	return nil
}
