package media_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/souvikdhua/cosmeticking/internal/application/media"
	"github.com/souvikdhua/cosmeticking/internal/domain/shared"
	"github.com/souvikdhua/cosmeticking/internal/infrastructure/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type imageRecorder struct {
	urls map[int64]string
	err  error
}

func (r *imageRecorder) SetImage(_ context.Context, id int64, url string) error {
	if r.err != nil {
		return r.err
	}
	if r.urls == nil {
		r.urls = make(map[int64]string)
	}
	r.urls[id] = url
	return nil
}

type failingStorage struct{}

func (failingStorage) Upload(context.Context, string, string, []byte) (string, error) {
	return "", errors.New("backend unavailable")
}

func newUploadService(stub *storage.StubStorage, catalog *imageRecorder) *media.Service {
	svc := media.NewService(stub, catalog, zap.NewNop())
	return svc.WithClock(func() time.Time {
		return time.Date(2024, 6, 15, 14, 30, 5, 0, time.UTC)
	})
}

func TestService_UploadProductImage_LinksURL(t *testing.T) {
	stub := storage.NewStubStorage()
	catalog := &imageRecorder{}
	svc := newUploadService(stub, catalog)

	url, err := svc.UploadProductImage(context.Background(), 101, "photo.PNG", "image/png", []byte("img"))
	require.NoError(t, err)

	wantKey := fmt.Sprintf("cosmetic-king/101/%d.png", time.Date(2024, 6, 15, 14, 30, 5, 0, time.UTC).UnixMilli())
	data, ok := stub.Object(wantKey)
	require.True(t, ok)
	assert.Equal(t, []byte("img"), data)
	assert.Equal(t, url, catalog.urls[101])
}

func TestService_UploadProductImage_UnknownExtensionDefaultsToJPG(t *testing.T) {
	stub := storage.NewStubStorage()
	svc := newUploadService(stub, &imageRecorder{})

	url, err := svc.UploadProductImage(context.Background(), 101, "photo.tiff", "image/tiff", []byte("img"))
	require.NoError(t, err)
	assert.Contains(t, url, ".jpg")
}

func TestService_UploadProductImage_RejectsOversized(t *testing.T) {
	stub := storage.NewStubStorage()
	svc := newUploadService(stub, &imageRecorder{})

	_, err := svc.UploadProductImage(context.Background(), 101, "big.jpg", "image/jpeg", make([]byte, media.MaxImageBytes+1))

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "IMAGE_TOO_LARGE", domainErr.Code)
	// The size check fires before anything reaches the backend.
	assert.Zero(t, stub.Len())
}

func TestService_UploadProductImage_AcceptsExactLimit(t *testing.T) {
	stub := storage.NewStubStorage()
	svc := newUploadService(stub, &imageRecorder{})

	_, err := svc.UploadProductImage(context.Background(), 101, "big.jpg", "image/jpeg", make([]byte, media.MaxImageBytes))
	require.NoError(t, err)
	assert.Equal(t, 1, stub.Len())
}

func TestService_UploadProductImage_BackendFailure(t *testing.T) {
	catalog := &imageRecorder{}
	svc := media.NewService(failingStorage{}, catalog, zap.NewNop())

	_, err := svc.UploadProductImage(context.Background(), 101, "photo.jpg", "image/jpeg", []byte("img"))

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "UPLOAD_FAILED", domainErr.Code)
	assert.Empty(t, catalog.urls)
}
