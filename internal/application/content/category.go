package content

import (
	"context"
	"strings"
	"time"

	"github.com/go-catalog-nosql/internal/domain"
	"github.com/go-catalog-nosql/internal/pkg/id"
	"github.com/go-catalog-nosql/internal/pkg/validate"
)

type CategoryService interface {
	Create(ctx context.Context, in domain.CategoryInput, img *domain.ImageUpload) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	Get(ctx context.Context, categoryID string) (*domain.Category, error)
	// Update changes the name when non-empty and swaps the image when img is non-nil.
	Update(ctx context.Context, categoryID string, in domain.CategoryInput, img *domain.ImageUpload) (*domain.Category, error)
	Delete(ctx context.Context, categoryID string) error
}

type categoryService struct {
	repo   itemStore[domain.Category]
	images imageStore
}

func NewCategoryService(repo itemStore[domain.Category], images imageStore) CategoryService {
	return &categoryService{repo: repo, images: images}
}

func (s *categoryService) Create(ctx context.Context, in domain.CategoryInput, img *domain.ImageUpload) (*domain.Category, error) {
	in.CategoryName = strings.TrimSpace(in.CategoryName)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	key, url, err := storeImage(ctx, s.images, "categories", img)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	c := &domain.Category{
		CategoryID:   id.New(),
		CategoryName: in.CategoryName,
		ImageURL:     url,
		ImageKey:     key,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Put(ctx, c); err != nil {
		dropImage(ctx, s.images, key)
		return nil, err
	}
	return c, nil
}

func (s *categoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.repo.List(ctx)
}

func (s *categoryService) Get(ctx context.Context, categoryID string) (*domain.Category, error) {
	return s.repo.Get(ctx, categoryID)
}

func (s *categoryService) Update(ctx context.Context, categoryID string, in domain.CategoryInput, img *domain.ImageUpload) (*domain.Category, error) {
	c, err := s.repo.Get(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(in.CategoryName); name != "" {
		c.CategoryName = name
	}
	var oldKey, newKey string
	if img != nil {
		key, url, err := storeImage(ctx, s.images, "categories", img)
		if err != nil {
			return nil, err
		}
		oldKey, newKey = c.ImageKey, key
		c.ImageKey, c.ImageURL = key, url
	}
	c.UpdatedAt = time.Now().UTC()
	if err := s.repo.Put(ctx, c); err != nil {
		dropImage(ctx, s.images, newKey)
		return nil, err
	}
	dropImage(ctx, s.images, oldKey)
	return c, nil
}

func (s *categoryService) Delete(ctx context.Context, categoryID string) error {
	c, err := s.repo.Get(ctx, categoryID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, categoryID); err != nil {
		return err
	}
	dropImage(ctx, s.images, c.ImageKey)
	return nil
}
