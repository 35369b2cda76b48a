package content

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-catalog-nosql/internal/domain"
	"github.com/go-catalog-nosql/internal/pkg/id"
	"github.com/go-catalog-nosql/internal/pkg/validate"
)

type DueDateService interface {
	Create(ctx context.Context, in domain.DueDateInput, img *domain.ImageUpload) (*domain.DueDate, error)
	// List returns promos ordered by due date. With activeOnly, promos whose
	// due day has passed are left out.
	List(ctx context.Context, activeOnly bool) ([]domain.DueDate, error)
	Get(ctx context.Context, dueDateID string) (*domain.DueDate, error)
	Update(ctx context.Context, dueDateID string, in domain.DueDateInput, img *domain.ImageUpload) (*domain.DueDate, error)
	Delete(ctx context.Context, dueDateID string) error
}

type dueDateService struct {
	repo   itemStore[domain.DueDate]
	images imageStore
	now    func() time.Time
}

func NewDueDateService(repo itemStore[domain.DueDate], images imageStore) DueDateService {
	return &dueDateService{repo: repo, images: images, now: time.Now}
}

// parseDueDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates.
func parseDueDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.DateOnly, v); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("dueDate must be RFC 3339 or YYYY-MM-DD: %w", domain.ErrBadRequest)
}

func (s *dueDateService) Create(ctx context.Context, in domain.DueDateInput, img *domain.ImageUpload) (*domain.DueDate, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	due, err := parseDueDate(in.DueDate)
	if err != nil {
		return nil, err
	}
	key, url, err := storeImage(ctx, s.images, "due-dates", img)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	d := &domain.DueDate{
		DueDateID: id.New(),
		Title:     in.Title,
		ImageURL:  url,
		ImageKey:  key,
		DueDate:   due,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Put(ctx, d); err != nil {
		dropImage(ctx, s.images, key)
		return nil, err
	}
	return d, nil
}

func (s *dueDateService) List(ctx context.Context, activeOnly bool) ([]domain.DueDate, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if activeOnly {
		today := s.now().UTC().Truncate(24 * time.Hour)
		kept := items[:0]
		for _, d := range items {
			if !d.DueDate.Before(today) {
				kept = append(kept, d)
			}
		}
		items = kept
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].DueDate.Before(items[j].DueDate)
	})
	return items, nil
}

func (s *dueDateService) Get(ctx context.Context, dueDateID string) (*domain.DueDate, error) {
	return s.repo.Get(ctx, dueDateID)
}

func (s *dueDateService) Update(ctx context.Context, dueDateID string, in domain.DueDateInput, img *domain.ImageUpload) (*domain.DueDate, error) {
	d, err := s.repo.Get(ctx, dueDateID)
	if err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(in.Title); v != "" {
		d.Title = v
	}
	if strings.TrimSpace(in.DueDate) != "" {
		due, err := parseDueDate(in.DueDate)
		if err != nil {
			return nil, err
		}
		d.DueDate = due
	}
	var oldKey, newKey string
	if img != nil {
		key, url, err := storeImage(ctx, s.images, "due-dates", img)
		if err != nil {
			return nil, err
		}
		oldKey, newKey = d.ImageKey, key
		d.ImageKey, d.ImageURL = key, url
	}
	d.UpdatedAt = time.Now().UTC()
	if err := s.repo.Put(ctx, d); err != nil {
		dropImage(ctx, s.images, newKey)
		return nil, err
	}
	dropImage(ctx, s.images, oldKey)
	return d, nil
}

func (s *dueDateService) Delete(ctx context.Context, dueDateID string) error {
	d, err := s.repo.Get(ctx, dueDateID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, dueDateID); err != nil {
		return err
	}
	dropImage(ctx, s.images, d.ImageKey)
	return nil
}
