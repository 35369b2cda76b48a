package content

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-catalog-nosql/internal/domain"
	"github.com/go-catalog-nosql/internal/pkg/geo"
	"github.com/go-catalog-nosql/internal/pkg/id"
	"github.com/go-catalog-nosql/internal/pkg/validate"
)

// DefaultNearbyRadiusKm applies when a nearby query gives no radius.
const DefaultNearbyRadiusKm = 10

type JobService interface {
	Create(ctx context.Context, in domain.JobInput, img *domain.ImageUpload) (*domain.Job, error)
	// List returns all jobs, or with near set only those within its radius, closest first.
	List(ctx context.Context, near *domain.NearbyQuery) ([]domain.Job, error)
	Get(ctx context.Context, jobID string) (*domain.Job, error)
	Update(ctx context.Context, jobID string, in domain.JobUpdate, img *domain.ImageUpload) (*domain.Job, error)
	Delete(ctx context.Context, jobID string) error
}

type jobService struct {
	repo   itemStore[domain.Job]
	images imageStore
}

func NewJobService(repo itemStore[domain.Job], images imageStore) JobService {
	return &jobService{repo: repo, images: images}
}

func (s *jobService) Create(ctx context.Context, in domain.JobInput, img *domain.ImageUpload) (*domain.Job, error) {
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	in.Role = strings.TrimSpace(in.Role)
	in.LocationName = strings.TrimSpace(in.LocationName)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	key, url, err := storeImage(ctx, s.images, "jobs", img)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	j := &domain.Job{
		JobID:        id.New(),
		Image:        url,
		ImageKey:     key,
		CompanyName:  in.CompanyName,
		Role:         in.Role,
		LocationName: in.LocationName,
		Location:     domain.NewGeoPoint(*in.Longitude, *in.Latitude),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Put(ctx, j); err != nil {
		dropImage(ctx, s.images, key)
		return nil, err
	}
	return j, nil
}

func (s *jobService) List(ctx context.Context, near *domain.NearbyQuery) ([]domain.Job, error) {
	jobs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if near == nil {
		return jobs, nil
	}
	if near.Latitude < -90 || near.Latitude > 90 || near.Longitude < -180 || near.Longitude > 180 {
		return nil, fmt.Errorf("lat/lng out of range: %w", domain.ErrBadRequest)
	}
	radius := near.RadiusKm
	if radius <= 0 {
		radius = DefaultNearbyRadiusKm
	}

	type hit struct {
		job  domain.Job
		dist float64
	}
	var hits []hit
	for _, j := range jobs {
		if len(j.Location.Coordinates) < 2 {
			continue
		}
		d := geo.DistanceKm(near.Latitude, near.Longitude, j.Location.Latitude(), j.Location.Longitude())
		if d <= radius {
			hits = append(hits, hit{job: j, dist: d})
		}
	}
	sort.SliceStable(hits, func(a, b int) bool { return hits[a].dist < hits[b].dist })

	out := make([]domain.Job, len(hits))
	for i, h := range hits {
		out[i] = h.job
	}
	return out, nil
}

func (s *jobService) Get(ctx context.Context, jobID string) (*domain.Job, error) {
	return s.repo.Get(ctx, jobID)
}

func (s *jobService) Update(ctx context.Context, jobID string, in domain.JobUpdate, img *domain.ImageUpload) (*domain.Job, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	if (in.Latitude == nil) != (in.Longitude == nil) {
		return nil, fmt.Errorf("latitude and longitude must be updated together: %w", domain.ErrBadRequest)
	}
	j, err := s.repo.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	setIfGiven(&j.CompanyName, in.CompanyName)
	setIfGiven(&j.Role, in.Role)
	setIfGiven(&j.LocationName, in.LocationName)
	if in.Latitude != nil {
		j.Location = domain.NewGeoPoint(*in.Longitude, *in.Latitude)
	}
	var oldKey, newKey string
	if img != nil {
		key, url, err := storeImage(ctx, s.images, "jobs", img)
		if err != nil {
			return nil, err
		}
		oldKey, newKey = j.ImageKey, key
		j.ImageKey, j.Image = key, url
	}
	j.UpdatedAt = time.Now().UTC()
	if err := s.repo.Put(ctx, j); err != nil {
		dropImage(ctx, s.images, newKey)
		return nil, err
	}
	dropImage(ctx, s.images, oldKey)
	return j, nil
}

func setIfGiven(dst *string, v *string) {
	if v == nil {
		return
	}
	if t := strings.TrimSpace(*v); t != "" {
		*dst = t
	}
}

func (s *jobService) Delete(ctx context.Context, jobID string) error {
	j, err := s.repo.Get(ctx, jobID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, jobID); err != nil {
		return err
	}
	dropImage(ctx, s.images, j.ImageKey)
	return nil
}
