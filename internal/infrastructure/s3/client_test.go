package s3infra

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-catalog-nosql/internal/config"
	"github.com/go-catalog-nosql/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockObjects struct{ mock.Mock }

func (m *mockObjects) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*s3.PutObjectOutput)
	return out, args.Error(1)
}
func (m *mockObjects) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*s3.DeleteObjectOutput)
	return out, args.Error(1)
}

func TestUpload_KeyAndURL(t *testing.T) {
	objs := &mockObjects{}
	objs.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return *in.Bucket == "imgs" && strings.HasPrefix(*in.Key, "banners/") && strings.HasSuffix(*in.Key, ".png") &&
			*in.ContentType == "image/png" && *in.ContentLength == 4
	})).Return(&s3.PutObjectOutput{}, nil)

	store := NewStore(objs, "imgs", "https://cdn.example.com/")
	key, url, err := store.Upload(context.Background(), "banners", &domain.ImageUpload{
		Filename: "Hero.PNG", ContentType: "image/png", Size: 4, Body: strings.NewReader("data"),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/"+key, url)
	objs.AssertExpectations(t)
}

func TestUpload_ExtensionFromContentType(t *testing.T) {
	objs := &mockObjects{}
	objs.On("PutObject", mock.Anything, mock.Anything).Return(&s3.PutObjectOutput{}, nil)

	key, _, err := NewStore(objs, "imgs", "https://cdn").Upload(context.Background(), "jobs", &domain.ImageUpload{
		Filename: "blob", ContentType: "image/jpeg", Body: strings.NewReader("x"),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(key, ".jpg"), key)
}

func TestUpload_Error(t *testing.T) {
	objs := &mockObjects{}
	objs.On("PutObject", mock.Anything, mock.Anything).Return(nil, errors.New("denied"))

	_, _, err := NewStore(objs, "imgs", "https://cdn").Upload(context.Background(), "jobs", &domain.ImageUpload{
		Filename: "a.png", ContentType: "image/png", Body: strings.NewReader("x"),
	})
	assert.ErrorContains(t, err, "denied")
}

func TestPublicBaseURL(t *testing.T) {
	assert.Equal(t, "https://cdn.example.com", PublicBaseURL(&config.Config{S3PublicURL: "https://cdn.example.com/"}))
	assert.Equal(t, "http://localhost:4566/imgs", PublicBaseURL(&config.Config{AWSEndpointURL: "http://localhost:4566", S3BucketName: "imgs"}))
	assert.Equal(t, "https://imgs.s3.eu-west-1.amazonaws.com", PublicBaseURL(&config.Config{S3BucketName: "imgs", AWSRegion: "eu-west-1"}))
}
