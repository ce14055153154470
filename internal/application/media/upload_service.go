// Package media handles product image uploads to the external media
// backend and links the resulting URLs to catalog products.
package media

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/souvikdhua/cosmeticking/internal/domain/shared"
	"go.uber.org/zap"
)

// MaxImageBytes is the client-facing upload size limit.
const MaxImageBytes = 5_000_000

// uploadFolder groups all storefront uploads under one prefix.
const uploadFolder = "cosmetic-king"

// ObjectStorage uploads a binary object and returns its public URL.
type ObjectStorage interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// ImageSetter links an uploaded image URL to a product.
type ImageSetter interface {
	SetImage(ctx context.Context, id int64, url string) error
}

// Service uploads product images.
type Service struct {
	storage ObjectStorage
	catalog ImageSetter
	logger  *zap.Logger
	now     func() time.Time
}

// NewService creates the upload service.
func NewService(storage ObjectStorage, catalog ImageSetter, logger *zap.Logger) *Service {
	return &Service{
		storage: storage,
		catalog: catalog,
		logger:  logger,
		now:     time.Now,
	}
}

// WithClock overrides the clock, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// UploadProductImage validates the image size, uploads the bytes, and
// merges the returned URL onto the product. The size check happens
// before any external call is issued.
func (s *Service) UploadProductImage(ctx context.Context, productID int64, filename, contentType string, data []byte) (string, error) {
	if len(data) > MaxImageBytes {
		return "", shared.NewDomainError("IMAGE_TOO_LARGE", "Image too large (Max 5MB)")
	}

	key := fmt.Sprintf("%s/%d/%d%s", uploadFolder, productID, s.now().UnixMilli(), imageExt(filename))
	url, err := s.storage.Upload(ctx, key, contentType, data)
	if err != nil {
		s.logger.Warn("image upload failed",
			zap.Int64("product_id", productID),
			zap.Error(err),
		)
		return "", shared.NewDomainError("UPLOAD_FAILED", "Upload failed")
	}

	if err := s.catalog.SetImage(ctx, productID, url); err != nil {
		return "", err
	}
	return url, nil
}

func imageExt(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return ext
	default:
		return ".jpg"
	}
}
