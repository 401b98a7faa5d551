// Package core defines the contracts between the service layer and the data
// layer (ports in hexagonal architecture). Service implementations depend on
// these interfaces, not concrete implementations.
package core

import (
	"context"
	"encoding/json"

	"github.com/evenbetter/dtwin-cms/internal/domain/model"
)

// UserRepository defines the interface for user account data operations.
type UserRepository interface {
	Create(ctx context.Context, req *model.CreateUserRequest, passwordHash string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
	// CountByRole returns how many accounts hold the role.
	CountByRole(ctx context.Context, role string) (int, error)
	UpdatePassword(ctx context.Context, email, passwordHash string) (bool, error)
}

// ContentRepository defines the interface for website content data operations.
type ContentRepository interface {
	List(ctx context.Context) ([]*model.Section, error)
	GetBySection(ctx context.Context, name model.SectionName) (*model.Section, error)
	Create(ctx context.Context, name model.SectionName, content json.RawMessage) (*model.Section, error)
	Update(ctx context.Context, name model.SectionName, content json.RawMessage) (*model.Section, error)
}

// BlogRepository defines the interface for blog post data operations.
type BlogRepository interface {
	Create(ctx context.Context, req *model.BlogWriteRequest, links model.ShareLinks) (*model.Blog, error)
	GetByID(ctx context.Context, id string) (*model.Blog, error)
	List(ctx context.Context) ([]*model.Blog, error)
	// ListRecent returns the newest posts first, at most limit of them.
	ListRecent(ctx context.Context, limit int) ([]*model.Blog, error)
	Update(ctx context.Context, id string, req *model.BlogWriteRequest, links model.ShareLinks) (*model.Blog, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// ObjectStore defines the interface for the public image bucket.
type ObjectStore interface {
	// Upload stores data under name with the given content type and returns
	// the public URL.
	Upload(ctx context.Context, params UploadParams) (string, error)
	List(ctx context.Context) ([]model.Image, error)
	Remove(ctx context.Context, name string) error
	// PublicURL returns the public URL for an object name without I/O.
	PublicURL(name string) string
}

// UploadParams groups parameters for ObjectStore.Upload to keep param count ≤3.
type UploadParams struct {
	Name        string
	ContentType string
	Data        []byte
}
