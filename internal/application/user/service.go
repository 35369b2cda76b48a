package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-catalog-nosql/internal/domain"
	"github.com/go-catalog-nosql/internal/pkg/validate"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldFullName    = "full_name"
	fieldEmail       = "email"
	fieldPhoneNumber = "phone_number"
	fieldAddress     = "address"
	fieldLatitude    = "latitude"
	fieldLongitude   = "longitude"
)

type Service interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	Update(ctx context.Context, userID string, req domain.UpdateProfileRequest) (*domain.User, error)
	Delete(ctx context.Context, userID string) error

	AddAddress(ctx context.Context, userID string, addr domain.Address) (*domain.Address, error)
	GetAddress(ctx context.Context, userID string) (*domain.Address, error)
	UpdateAddress(ctx context.Context, userID string, addr domain.Address) (*domain.Address, error)
	DeleteAddress(ctx context.Context, userID string) error

	AddLocation(ctx context.Context, userID string, req domain.LocationRequest) (*domain.Location, error)
	UpdateLocation(ctx context.Context, userID string, req domain.LocationRequest) (*domain.Location, error)
	GetLocation(ctx context.Context, userID string) (*domain.Location, error)
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]any) error
	UpdateWithIdentities(ctx context.Context, userID string, updates map[string]any, changes []domain.IdentityChange) error
	Delete(ctx context.Context, u *domain.User) error
}

type service struct {
	repo userStore
}

type ServiceDeps struct {
	UserRepo userStore
}

func NewService(deps ServiceDeps) Service {
	return &service{repo: deps.UserRepo}
}

func (s *service) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.Get(ctx, userID)
}

func (s *service) Update(ctx context.Context, userID string, req domain.UpdateProfileRequest) (*domain.User, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	u, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	var changes []domain.IdentityChange
	if req.FullName != nil {
		name := strings.TrimSpace(*req.FullName)
		if name == "" {
			return nil, fmt.Errorf("fullName cannot be empty: %w", domain.ErrBadRequest)
		}
		updates[fieldFullName] = name
	}
	if req.Email != nil {
		email := domain.NormalizeEmail(*req.Email)
		if email != u.Email {
			if err := s.ensureFree(ctx, s.repo.GetByEmail, email, userID); err != nil {
				return nil, err
			}
			updates[fieldEmail] = email
			changes = append(changes, domain.IdentityChange{Attr: fieldEmail, Old: u.Email, New: email})
		}
	}
	if req.PhoneNumber != nil {
		phone := domain.NormalizePhone(*req.PhoneNumber)
		if phone == "" {
			return nil, fmt.Errorf("phoneNumber is invalid: %w", domain.ErrBadRequest)
		}
		if phone != u.PhoneNumber {
			if err := s.ensureFree(ctx, s.repo.GetByPhone, phone, userID); err != nil {
				return nil, err
			}
			updates[fieldPhoneNumber] = phone
			changes = append(changes, domain.IdentityChange{Attr: fieldPhoneNumber, Old: u.PhoneNumber, New: phone})
		}
	}
	if len(updates) == 0 {
		return u, nil
	}

	if len(changes) > 0 {
		err = s.repo.UpdateWithIdentities(ctx, userID, updates, changes)
	} else {
		err = s.repo.Update(ctx, userID, updates)
	}
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, userID)
}

// ensureFree is a friendly pre-check; the identity transaction is what
// actually guarantees uniqueness.
func (s *service) ensureFree(ctx context.Context, lookup func(context.Context, string) (*domain.User, error), value, userID string) error {
	other, err := lookup(ctx, value)
	switch {
	case err == nil && other.UserID != userID:
		return fmt.Errorf("%s already in use: %w", value, domain.ErrConflict)
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		return err
	}
	return nil
}

func (s *service) Delete(ctx context.Context, userID string) error {
	u, err := s.repo.Get(ctx, userID)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, u)
}

func (s *service) AddAddress(ctx context.Context, userID string, addr domain.Address) (*domain.Address, error) {
	if addr.IsZero() {
		return nil, fmt.Errorf("address is empty: %w", domain.ErrBadRequest)
	}
	if _, err := s.repo.Get(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, userID, map[string]any{fieldAddress: addr}); err != nil {
		return nil, err
	}
	return &addr, nil
}

func (s *service) GetAddress(ctx context.Context, userID string) (*domain.Address, error) {
	u, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.Address == nil || u.Address.IsZero() {
		return nil, fmt.Errorf("address not set: %w", domain.ErrNotFound)
	}
	return u.Address, nil
}

// UpdateAddress overlays the non-empty fields of addr onto the stored address.
func (s *service) UpdateAddress(ctx context.Context, userID string, addr domain.Address) (*domain.Address, error) {
	current, err := s.GetAddress(ctx, userID)
	if err != nil {
		return nil, err
	}
	merged := *current
	overlay(&merged.AddressLine1, addr.AddressLine1)
	overlay(&merged.AddressLine2, addr.AddressLine2)
	overlay(&merged.City, addr.City)
	overlay(&merged.State, addr.State)
	overlay(&merged.PostalCode, addr.PostalCode)
	overlay(&merged.Country, addr.Country)
	if err := s.repo.Update(ctx, userID, map[string]any{fieldAddress: merged}); err != nil {
		return nil, err
	}
	return &merged, nil
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func (s *service) DeleteAddress(ctx context.Context, userID string) error {
	if _, err := s.repo.Get(ctx, userID); err != nil {
		return err
	}
	return s.repo.Update(ctx, userID, map[string]any{fieldAddress: nil})
}

func (s *service) AddLocation(ctx context.Context, userID string, req domain.LocationRequest) (*domain.Location, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	u, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.HasLocation() {
		return nil, fmt.Errorf("location already set, use update: %w", domain.ErrConflict)
	}
	return s.writeLocation(ctx, userID, req)
}

func (s *service) UpdateLocation(ctx context.Context, userID string, req domain.LocationRequest) (*domain.Location, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	if _, err := s.repo.Get(ctx, userID); err != nil {
		return nil, err
	}
	return s.writeLocation(ctx, userID, req)
}

func (s *service) writeLocation(ctx context.Context, userID string, req domain.LocationRequest) (*domain.Location, error) {
	err := s.repo.Update(ctx, userID, map[string]any{
		fieldLatitude:  *req.Latitude,
		fieldLongitude: *req.Longitude,
	})
	if err != nil {
		return nil, err
	}
	return &domain.Location{Latitude: req.Latitude, Longitude: req.Longitude}, nil
}

func (s *service) GetLocation(ctx context.Context, userID string) (*domain.Location, error) {
	u, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !u.HasLocation() {
		return nil, fmt.Errorf("location not set: %w", domain.ErrNotFound)
	}
	return &domain.Location{Latitude: u.Latitude, Longitude: u.Longitude}, nil
}
