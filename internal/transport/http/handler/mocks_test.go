package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"testing"

	"github.com/go-catalog-nosql/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockAuthSvc struct{ mock.Mock }

func (m *mockAuthSvc) RequestRegistration(ctx context.Context, req domain.RegisterRequest) (domain.Challenge, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.Challenge), args.Error(1)
}

func (m *mockAuthSvc) ConfirmRegistration(ctx context.Context, ref, code string) (domain.Profile, error) {
	args := m.Called(ctx, ref, code)
	return args.Get(0).(domain.Profile), args.Error(1)
}

func (m *mockAuthSvc) RequestPasswordReset(ctx context.Context, req domain.PasswordResetRequest) (domain.Challenge, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.Challenge), args.Error(1)
}

func (m *mockAuthSvc) ConfirmPasswordResetOtp(ctx context.Context, ref, code string) error {
	return m.Called(ctx, ref, code).Error(0)
}

func (m *mockAuthSvc) CompletePasswordReset(ctx context.Context, req domain.CompletePasswordResetRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *mockAuthSvc) Login(ctx context.Context, req domain.LoginRequest) (domain.Profile, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.Profile), args.Error(1)
}

type mockProfileSvc struct{ mock.Mock }

func (m *mockProfileSvc) Get(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProfileSvc) Update(ctx context.Context, userID string, req domain.UpdateProfileRequest) (*domain.User, error) {
	args := m.Called(ctx, userID, req)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProfileSvc) Delete(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockProfileSvc) AddAddress(ctx context.Context, userID string, addr domain.Address) (*domain.Address, error) {
	args := m.Called(ctx, userID, addr)
	if a, _ := args.Get(0).(*domain.Address); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProfileSvc) GetAddress(ctx context.Context, userID string) (*domain.Address, error) {
	args := m.Called(ctx, userID)
	if a, _ := args.Get(0).(*domain.Address); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProfileSvc) UpdateAddress(ctx context.Context, userID string, addr domain.Address) (*domain.Address, error) {
	args := m.Called(ctx, userID, addr)
	if a, _ := args.Get(0).(*domain.Address); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProfileSvc) DeleteAddress(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockProfileSvc) AddLocation(ctx context.Context, userID string, req domain.LocationRequest) (*domain.Location, error) {
	args := m.Called(ctx, userID, req)
	if l, _ := args.Get(0).(*domain.Location); l != nil {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProfileSvc) UpdateLocation(ctx context.Context, userID string, req domain.LocationRequest) (*domain.Location, error) {
	args := m.Called(ctx, userID, req)
	if l, _ := args.Get(0).(*domain.Location); l != nil {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProfileSvc) GetLocation(ctx context.Context, userID string) (*domain.Location, error) {
	args := m.Called(ctx, userID)
	if l, _ := args.Get(0).(*domain.Location); l != nil {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockNotificationSvc struct{ mock.Mock }

func (m *mockNotificationSvc) Create(ctx context.Context, in domain.NotificationInput) (*domain.Notification, error) {
	args := m.Called(ctx, in)
	if n, _ := args.Get(0).(*domain.Notification); n != nil {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNotificationSvc) List(ctx context.Context) ([]domain.Notification, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *mockNotificationSvc) MarkAsRead(ctx context.Context, notificationID string) (*domain.Notification, error) {
	args := m.Called(ctx, notificationID)
	if n, _ := args.Get(0).(*domain.Notification); n != nil {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNotificationSvc) Delete(ctx context.Context, notificationID string) error {
	return m.Called(ctx, notificationID).Error(0)
}

type mockCategorySvc struct{ mock.Mock }

func (m *mockCategorySvc) Create(ctx context.Context, in domain.CategoryInput, img *domain.ImageUpload) (*domain.Category, error) {
	args := m.Called(ctx, in, img)
	if c, _ := args.Get(0).(*domain.Category); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategorySvc) List(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *mockCategorySvc) Get(ctx context.Context, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	if c, _ := args.Get(0).(*domain.Category); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategorySvc) Update(ctx context.Context, categoryID string, in domain.CategoryInput, img *domain.ImageUpload) (*domain.Category, error) {
	args := m.Called(ctx, categoryID, in, img)
	if c, _ := args.Get(0).(*domain.Category); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategorySvc) Delete(ctx context.Context, categoryID string) error {
	return m.Called(ctx, categoryID).Error(0)
}

type mockJobSvc struct{ mock.Mock }

func (m *mockJobSvc) Create(ctx context.Context, in domain.JobInput, img *domain.ImageUpload) (*domain.Job, error) {
	args := m.Called(ctx, in, img)
	if j, _ := args.Get(0).(*domain.Job); j != nil {
		return j, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockJobSvc) List(ctx context.Context, near *domain.NearbyQuery) ([]domain.Job, error) {
	args := m.Called(ctx, near)
	return args.Get(0).([]domain.Job), args.Error(1)
}

func (m *mockJobSvc) Get(ctx context.Context, jobID string) (*domain.Job, error) {
	args := m.Called(ctx, jobID)
	if j, _ := args.Get(0).(*domain.Job); j != nil {
		return j, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockJobSvc) Update(ctx context.Context, jobID string, in domain.JobUpdate, img *domain.ImageUpload) (*domain.Job, error) {
	args := m.Called(ctx, jobID, in, img)
	if j, _ := args.Get(0).(*domain.Job); j != nil {
		return j, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockJobSvc) Delete(ctx context.Context, jobID string) error {
	return m.Called(ctx, jobID).Error(0)
}

type mockDueDateSvc struct{ mock.Mock }

func (m *mockDueDateSvc) Create(ctx context.Context, in domain.DueDateInput, img *domain.ImageUpload) (*domain.DueDate, error) {
	args := m.Called(ctx, in, img)
	if d, _ := args.Get(0).(*domain.DueDate); d != nil {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDueDateSvc) List(ctx context.Context, activeOnly bool) ([]domain.DueDate, error) {
	args := m.Called(ctx, activeOnly)
	return args.Get(0).([]domain.DueDate), args.Error(1)
}

func (m *mockDueDateSvc) Get(ctx context.Context, dueDateID string) (*domain.DueDate, error) {
	args := m.Called(ctx, dueDateID)
	if d, _ := args.Get(0).(*domain.DueDate); d != nil {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDueDateSvc) Update(ctx context.Context, dueDateID string, in domain.DueDateInput, img *domain.ImageUpload) (*domain.DueDate, error) {
	args := m.Called(ctx, dueDateID, in, img)
	if d, _ := args.Get(0).(*domain.DueDate); d != nil {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDueDateSvc) Delete(ctx context.Context, dueDateID string) error {
	return m.Called(ctx, dueDateID).Error(0)
}

// --- helpers ---

// withChiParam injects a chi URL param into the request context.
func withChiParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

// decodeEnvelope decodes the response and, when data is non-nil, its data field into data.
func decodeEnvelope(t *testing.T, body io.Reader, data any) Envelope {
	t.Helper()
	var raw struct {
		Envelope
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(body).Decode(&raw))
	if data != nil {
		require.NoError(t, json.Unmarshal(raw.Data, data))
	}
	return raw.Envelope
}

type formFile struct {
	field       string
	filename    string
	contentType string
	content     []byte
}

// multipartBody encodes fields and an optional file, returning the body and its Content-Type.
func multipartBody(t *testing.T, fields map[string]string, file *formFile) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+file.field+`"; filename="`+file.filename+`"`)
		if file.contentType != "" {
			h.Set("Content-Type", file.contentType)
		}
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(file.content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

// pngBytes is the PNG signature followed by an IHDR chunk header, enough for content sniffing.
var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}
