package service

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/evenbetter/dtwin-cms/internal/core"
	"github.com/evenbetter/dtwin-cms/internal/domain/model"
	apperrors "github.com/evenbetter/dtwin-cms/internal/errors"
)

// ImageServiceOptions groups dependencies for ImageService.
type ImageServiceOptions struct {
	Store core.ObjectStore
	// Now overrides the clock; nil means time.Now. Useful in tests.
	Now func() time.Time
}

// ImageService orchestrates the public image bucket.
type ImageService struct {
	store core.ObjectStore
	now   func() time.Time
}

// NewImageService constructs a new ImageService.
func NewImageService(opts ImageServiceOptions) *ImageService {
	if opts.Store == nil {
		panic("ImageService requires an object store")
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &ImageService{store: opts.Store, now: now}
}

// UploadInput carries one file to store.
type UploadInput struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Upload stores an image under a timestamped name so repeated uploads of
// the same file never collide, and returns its public URL.
func (s *ImageService) Upload(ctx context.Context, in UploadInput) (*model.Image, error) {
	filename := sanitizeFilename(in.Filename)
	if filename == "" {
		return nil, apperrors.Validation("filename is required")
	}
	if len(in.Data) == 0 {
		return nil, apperrors.Validation("file is empty")
	}

	name := fmt.Sprintf("%d-%s", s.now().UnixMilli(), filename)
	url, err := s.store.Upload(ctx, core.UploadParams{
		Name:        name,
		ContentType: in.ContentType,
		Data:        in.Data,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeUpstream, "upload image")
	}
	return &model.Image{Name: name, URL: url}, nil
}

// List returns every image in the bucket with public URLs.
func (s *ImageService) List(ctx context.Context) ([]model.Image, error) {
	images, err := s.store.List(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeUpstream, "list images")
	}
	return images, nil
}

// Delete removes an image from the bucket.
func (s *ImageService) Delete(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.Validation("image name is required")
	}
	if err := s.store.Remove(ctx, name); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeUpstream, "delete image")
	}
	return nil
}

// sanitizeFilename strips any path components and whitespace so object
// names stay flat inside the bucket.
func sanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" {
		return ""
	}
	return strings.ReplaceAll(name, " ", "_")
}
