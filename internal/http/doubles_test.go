package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/evenbetter/dtwin-cms/internal/core"
	domainauth "github.com/evenbetter/dtwin-cms/internal/domain/auth"
	"github.com/evenbetter/dtwin-cms/internal/domain/model"
	apperrors "github.com/evenbetter/dtwin-cms/internal/errors"
	mocks "github.com/evenbetter/dtwin-cms/internal/mocks/auth"
	"github.com/evenbetter/dtwin-cms/internal/service"
)

// In-memory doubles so handler tests can run against real services.

type memUserRepo struct {
	mu     sync.Mutex
	users  map[string]*model.User
	nextID int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*model.User{}}
}

func (r *memUserRepo) Create(_ context.Context, req *model.CreateUserRequest, hash string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[req.Email]; ok {
		return nil, apperrors.Conflict("email already exists")
	}
	r.nextID++
	u := &model.User{
		ID:           fmt.Sprintf("u-%d", r.nextID),
		Email:        req.Email,
		Role:         req.Role,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	r.users[u.Email] = u
	return u, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[email]; ok {
		return u, nil
	}
	return nil, apperrors.NotFound("user not found")
}

func (r *memUserRepo) List(_ context.Context) ([]*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.User
	for _, u := range r.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (r *memUserRepo) CountByRole(_ context.Context, role string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, u := range r.users {
		if string(u.Role) == role {
			count++
		}
	}
	return count, nil
}

func (r *memUserRepo) UpdatePassword(_ context.Context, email, hash string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return false, nil
	}
	u.PasswordHash = hash
	return true, nil
}

type memContentRepo struct {
	mu       sync.Mutex
	sections map[model.SectionName]*model.Section
}

func newMemContentRepo() *memContentRepo {
	return &memContentRepo{sections: map[model.SectionName]*model.Section{}}
}

func (r *memContentRepo) List(context.Context) ([]*model.Section, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Section
	for _, s := range r.sections {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memContentRepo) GetBySection(_ context.Context, name model.SectionName) (*model.Section, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sections[name]; ok {
		return s, nil
	}
	return nil, apperrors.NotFoundf("section %q not found", name)
}

func (r *memContentRepo) Create(_ context.Context, name model.SectionName, content json.RawMessage) (*model.Section, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sections[name]; ok {
		return nil, apperrors.Conflict("section already exists")
	}
	s := &model.Section{ID: "s-" + string(name), Name: name, Content: content, UpdatedAt: time.Now()}
	r.sections[name] = s
	return s, nil
}

func (r *memContentRepo) Update(_ context.Context, name model.SectionName, content json.RawMessage) (*model.Section, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sections[name]
	if !ok {
		return nil, apperrors.NotFoundf("section %q not found", name)
	}
	s.Content = content
	s.UpdatedAt = time.Now()
	return s, nil
}

type memBlogRepo struct {
	mu     sync.Mutex
	blogs  []*model.Blog
	nextID int
}

func newMemBlogRepo() *memBlogRepo { return &memBlogRepo{} }

func (r *memBlogRepo) Create(_ context.Context, req *model.BlogWriteRequest, links model.ShareLinks) (*model.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	b := &model.Blog{
		ID:         fmt.Sprintf("b-%d", r.nextID),
		Image:      req.Image,
		ImageAlt:   req.ImageAlt,
		MainTag:    req.MainTag,
		Date:       req.Date,
		Heading:    req.Heading,
		Content:    req.Content,
		Tags:       req.Tags,
		ShareLinks: links,
		CreatedAt:  time.Now(),
	}
	r.blogs = append([]*model.Blog{b}, r.blogs...)
	return b, nil
}

func (r *memBlogRepo) GetByID(_ context.Context, id string) (*model.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.blogs {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, apperrors.NotFound("blog not found")
}

func (r *memBlogRepo) List(context.Context) ([]*model.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*model.Blog(nil), r.blogs...), nil
}

func (r *memBlogRepo) ListRecent(_ context.Context, limit int) ([]*model.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if limit > len(r.blogs) {
		limit = len(r.blogs)
	}
	return append([]*model.Blog(nil), r.blogs[:limit]...), nil
}

func (r *memBlogRepo) Update(_ context.Context, id string, req *model.BlogWriteRequest, links model.ShareLinks) (*model.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.blogs {
		if b.ID == id {
			b.Heading = req.Heading
			b.Content = req.Content
			b.Tags = req.Tags
			b.MainTag = req.MainTag
			b.ShareLinks = links
			return b, nil
		}
	}
	return nil, apperrors.NotFound("blog not found")
}

func (r *memBlogRepo) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, b := range r.blogs {
		if b.ID == id {
			r.blogs = append(r.blogs[:i], r.blogs[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type memObjectStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemObjectStore() *memObjectStore {
	return &memObjectStore{objects: map[string][]byte{}}
}

func (s *memObjectStore) Upload(_ context.Context, params core.UploadParams) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[params.Name] = params.Data
	return s.PublicURL(params.Name), nil
}

func (s *memObjectStore) List(context.Context) ([]model.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var names []string
	for name := range s.objects {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]model.Image, 0, len(names))
	for _, name := range names {
		out = append(out, model.Image{Name: name, URL: s.PublicURL(name)})
	}
	return out, nil
}

func (s *memObjectStore) Remove(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, name)
	return nil
}

func (s *memObjectStore) PublicURL(name string) string {
	return "https://bucket.test/public/cms-images/" + name
}

var (
	_ core.UserRepository    = (*memUserRepo)(nil)
	_ core.ContentRepository = (*memContentRepo)(nil)
	_ core.BlogRepository    = (*memBlogRepo)(nil)
	_ core.ObjectStore       = (*memObjectStore)(nil)
)

// Well-known bearer tokens for the role-gate tests.
const (
	adminToken  = "admin-token"
	editorToken = "editor-token"
	seoToken    = "seo-token"
)

func testVerifier() *mocks.MapTokenVerifier {
	return &mocks.MapTokenVerifier{
		Claims: map[string]domainauth.Claims{
			adminToken:  {UserID: "u-admin", Email: "admin@example.com", Role: domainauth.RoleAdmin},
			editorToken: {UserID: "u-editor", Email: "editor@example.com", Role: domainauth.RoleEditor},
			seoToken:    {UserID: "u-seo", Email: "seo@example.com", Role: domainauth.RoleSEO},
		},
	}
}

// testRouter wires a full api router over in-memory repositories.
type testRouterDeps struct {
	users   *memUserRepo
	content *memContentRepo
	blogs   *memBlogRepo
	store   *memObjectStore
}

func newTestRouter() (*testRouterDeps, RouterServices) {
	deps := &testRouterDeps{
		users:   newMemUserRepo(),
		content: newMemContentRepo(),
		blogs:   newMemBlogRepo(),
		store:   newMemObjectStore(),
	}
	services := RouterServices{
		Auth: service.NewAuthService(service.AuthServiceOptions{
			Users: deps.users,
			Crypto: service.AuthCrypto{
				Hasher: &mocks.PlainPasswordHasher{},
				Tokens: &mocks.StaticTokenIssuer{Token: "issued-token"},
			},
		}),
		Content:  service.NewContentService(service.ContentServiceOptions{Repo: deps.content}),
		Blogs:    service.NewBlogService(service.BlogServiceOptions{Repo: deps.blogs}),
		Images:   service.NewImageService(service.ImageServiceOptions{Store: deps.store}),
		Verifier: testVerifier(),
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	return deps, services
}
