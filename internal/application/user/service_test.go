package user

import (
	"context"
	"errors"
	"testing"

	"github.com/go-catalog-nosql/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Get(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	args := m.Called(ctx, phone)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) Update(ctx context.Context, userID string, updates map[string]any) error {
	return m.Called(ctx, userID, updates).Error(0)
}
func (m *mockUserStore) UpdateWithIdentities(ctx context.Context, userID string, updates map[string]any, changes []domain.IdentityChange) error {
	return m.Called(ctx, userID, updates, changes).Error(0)
}
func (m *mockUserStore) Delete(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}

func strPtr(s string) *string { return &s }
func f64Ptr(f float64) *float64 { return &f }

func existingUser() *domain.User {
	return &domain.User{UserID: "u1", FullName: "Asha", Email: "asha@example.com", PhoneNumber: "+15550100001"}
}

// --- Get ---

func TestGet_NotFound(t *testing.T) {
	repo := &mockUserStore{}
	repo.On("Get", mock.Anything, "missing").Return(nil, domain.ErrNotFound)

	_, err := NewService(ServiceDeps{UserRepo: repo}).Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// --- Update ---

func TestUpdate_NameOnly(t *testing.T) {
	repo := &mockUserStore{}
	repo.On("Get", mock.Anything, "u1").Return(existingUser(), nil)
	repo.On("Update", mock.Anything, "u1", map[string]any{fieldFullName: "Asha Rao"}).Return(nil)

	_, err := NewService(ServiceDeps{UserRepo: repo}).Update(context.Background(), "u1", domain.UpdateProfileRequest{FullName: strPtr(" Asha Rao ")})
	require.NoError(t, err)
	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "UpdateWithIdentities", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_EmailChangeMovesIdentity(t *testing.T) {
	repo := &mockUserStore{}
	repo.On("Get", mock.Anything, "u1").Return(existingUser(), nil)
	repo.On("GetByEmail", mock.Anything, "new@example.com").Return(nil, domain.ErrNotFound)
	repo.On("UpdateWithIdentities", mock.Anything, "u1",
		map[string]any{fieldEmail: "new@example.com"},
		[]domain.IdentityChange{{Attr: fieldEmail, Old: "asha@example.com", New: "new@example.com"}},
	).Return(nil)

	_, err := NewService(ServiceDeps{UserRepo: repo}).Update(context.Background(), "u1", domain.UpdateProfileRequest{Email: strPtr("New@Example.com")})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdate_PhoneTakenByOther(t *testing.T) {
	repo := &mockUserStore{}
	repo.On("Get", mock.Anything, "u1").Return(existingUser(), nil)
	repo.On("GetByPhone", mock.Anything, "+15550100002").Return(&domain.User{UserID: "u2"}, nil)

	_, err := NewService(ServiceDeps{UserRepo: repo}).Update(context.Background(), "u1", domain.UpdateProfileRequest{PhoneNumber: strPtr("+1 555 010 0002")})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUpdate_SameEmailIsNoop(t *testing.T) {
	repo := &mockUserStore{}
	repo.On("Get", mock.Anything, "u1").Return(existingUser(), nil)

	u, err := NewService(ServiceDeps{UserRepo: repo}).Update(context.Background(), "u1", domain.UpdateProfileRequest{Email: strPtr("ASHA@example.com")})
	require.NoError(t, err)
	assert.Equal(t, "u1", u.UserID)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_InvalidEmail(t *testing.T) {
	_, err := NewService(ServiceDeps{UserRepo: &mockUserStore{}}).Update(context.Background(), "u1", domain.UpdateProfileRequest{Email: strPtr("nope")})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

// --- Delete ---

func TestDelete_RemovesUser(t *testing.T) {
	u := existingUser()
	repo := &mockUserStore{}
	repo.On("Get", mock.Anything, "u1").Return(u, nil)
	repo.On("Delete", mock.Anything, u).Return(nil)

	require.NoError(t, NewService(ServiceDeps{UserRepo: repo}).Delete(context.Background(), "u1"))
	repo.AssertExpectations(t)
}

// --- Address ---

func TestAddAddress_Empty(t *testing.T) {
	_, err := NewService(ServiceDeps{UserRepo: &mockUserStore{}}).AddAddress(context.Background(), "u1", domain.Address{})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestGetAddress_NotSet(t *testing.T) {
	repo := &mockUserStore{}
	repo.On("Get", mock.Anything, "u1").Return(existingUser(), nil)

	_, err := NewService(ServiceDeps{UserRepo: repo}).GetAddress(context.Background(), "u1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateAddress_Merges(t *testing.T) {
	u := existingUser()
	u.Address = &domain.Address{AddressLine1: "1 Main St", City: "Pune", Country: "IN"}
	repo := &mockUserStore{}
	repo.On("Get", mock.Anything, "u1").Return(u, nil)
	repo.On("Update", mock.Anything, "u1", mock.Anything).Return(nil)

	got, err := NewService(ServiceDeps{UserRepo: repo}).UpdateAddress(context.Background(), "u1", domain.Address{City: "Mumbai"})
	require.NoError(t, err)
	assert.Equal(t, "1 Main St", got.AddressLine1)
	assert.Equal(t, "Mumbai", got.City)
	assert.Equal(t, "IN", got.Country)
}

func TestDeleteAddress_ClearsAttribute(t *testing.T) {
	repo := &mockUserStore{}
	repo.On("Get", mock.Anything, "u1").Return(existingUser(), nil)
	repo.On("Update", mock.Anything, "u1", map[string]any{fieldAddress: nil}).Return(nil)

	require.NoError(t, NewService(ServiceDeps{UserRepo: repo}).DeleteAddress(context.Background(), "u1"))
	repo.AssertExpectations(t)
}

// --- Location ---

func TestAddLocation_AlreadySet(t *testing.T) {
	u := existingUser()
	u.Latitude, u.Longitude = f64Ptr(1), f64Ptr(2)
	repo := &mockUserStore{}
	repo.On("Get", mock.Anything, "u1").Return(u, nil)

	_, err := NewService(ServiceDeps{UserRepo: repo}).AddLocation(context.Background(), "u1", domain.LocationRequest{Latitude: f64Ptr(3), Longitude: f64Ptr(4)})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAddLocation_OutOfRange(t *testing.T) {
	_, err := NewService(ServiceDeps{UserRepo: &mockUserStore{}}).AddLocation(context.Background(), "u1", domain.LocationRequest{Latitude: f64Ptr(100), Longitude: f64Ptr(4)})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestAddLocation_MissingLongitude(t *testing.T) {
	_, err := NewService(ServiceDeps{UserRepo: &mockUserStore{}}).AddLocation(context.Background(), "u1", domain.LocationRequest{Latitude: f64Ptr(10)})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestAddLocation_Writes(t *testing.T) {
	repo := &mockUserStore{}
	repo.On("Get", mock.Anything, "u1").Return(existingUser(), nil)
	repo.On("Update", mock.Anything, "u1", map[string]any{fieldLatitude: 12.9, fieldLongitude: 77.6}).Return(nil)

	loc, err := NewService(ServiceDeps{UserRepo: repo}).AddLocation(context.Background(), "u1", domain.LocationRequest{Latitude: f64Ptr(12.9), Longitude: f64Ptr(77.6)})
	require.NoError(t, err)
	assert.Equal(t, 12.9, *loc.Latitude)
	repo.AssertExpectations(t)
}

func TestGetLocation_NotSet(t *testing.T) {
	repo := &mockUserStore{}
	repo.On("Get", mock.Anything, "u1").Return(existingUser(), nil)

	_, err := NewService(ServiceDeps{UserRepo: repo}).GetLocation(context.Background(), "u1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateLocation_RepoError(t *testing.T) {
	repo := &mockUserStore{}
	repo.On("Get", mock.Anything, "u1").Return(existingUser(), nil)
	repo.On("Update", mock.Anything, "u1", mock.Anything).Return(errors.New("boom"))

	_, err := NewService(ServiceDeps{UserRepo: repo}).UpdateLocation(context.Background(), "u1", domain.LocationRequest{Latitude: f64Ptr(1), Longitude: f64Ptr(1)})
	assert.ErrorContains(t, err, "boom")
}
