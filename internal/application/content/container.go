package content

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-catalog-nosql/internal/domain"
	"github.com/go-catalog-nosql/internal/pkg/id"
	"github.com/go-catalog-nosql/internal/pkg/validate"
)

type ContainerService interface {
	Create(ctx context.Context, in domain.ContainerInput, img *domain.ImageUpload) (*domain.Container, error)
	List(ctx context.Context) ([]domain.Container, error)
	Get(ctx context.Context, containerID string) (*domain.Container, error)
	Update(ctx context.Context, containerID string, in domain.ContainerInput, img *domain.ImageUpload) (*domain.Container, error)
	Delete(ctx context.Context, containerID string) error
}

type containerService struct {
	repo   itemStore[domain.Container]
	images imageStore
}

func NewContainerService(repo itemStore[domain.Container], images imageStore) ContainerService {
	return &containerService{repo: repo, images: images}
}

func (s *containerService) Create(ctx context.Context, in domain.ContainerInput, img *domain.ImageUpload) (*domain.Container, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Link = strings.TrimSpace(in.Link)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	key, imgURL, err := storeImage(ctx, s.images, "containers", img)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	c := &domain.Container{
		ContainerID: id.New(),
		Name:        in.Name,
		Link:        in.Link,
		ImageURL:    imgURL,
		ImageKey:    key,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Put(ctx, c); err != nil {
		dropImage(ctx, s.images, key)
		return nil, err
	}
	return c, nil
}

func (s *containerService) List(ctx context.Context) ([]domain.Container, error) {
	return s.repo.List(ctx)
}

func (s *containerService) Get(ctx context.Context, containerID string) (*domain.Container, error) {
	return s.repo.Get(ctx, containerID)
}

func (s *containerService) Update(ctx context.Context, containerID string, in domain.ContainerInput, img *domain.ImageUpload) (*domain.Container, error) {
	c, err := s.repo.Get(ctx, containerID)
	if err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(in.Name); v != "" {
		c.Name = v
	}
	if v := strings.TrimSpace(in.Link); v != "" {
		if u, err := url.Parse(v); err != nil || u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("link must be an absolute URL: %w", domain.ErrBadRequest)
		}
		c.Link = v
	}
	var oldKey, newKey string
	if img != nil {
		key, imgURL, err := storeImage(ctx, s.images, "containers", img)
		if err != nil {
			return nil, err
		}
		oldKey, newKey = c.ImageKey, key
		c.ImageKey, c.ImageURL = key, imgURL
	}
	c.UpdatedAt = time.Now().UTC()
	if err := s.repo.Put(ctx, c); err != nil {
		dropImage(ctx, s.images, newKey)
		return nil, err
	}
	dropImage(ctx, s.images, oldKey)
	return c, nil
}

func (s *containerService) Delete(ctx context.Context, containerID string) error {
	c, err := s.repo.Get(ctx, containerID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, containerID); err != nil {
		return err
	}
	dropImage(ctx, s.images, c.ImageKey)
	return nil
}
