package service

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/evenbetter/dtwin-cms/internal/core"
	domainauth "github.com/evenbetter/dtwin-cms/internal/domain/auth"
	"github.com/evenbetter/dtwin-cms/internal/domain/model"
	apperrors "github.com/evenbetter/dtwin-cms/internal/errors"
)

// In-memory doubles for the core repository interfaces.

type memUserRepo struct {
	mu     sync.Mutex
	users  map[string]*model.User // keyed by email
	nextID int
	err    error // when set, every call fails with it
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*model.User{}}
}

func (r *memUserRepo) Create(_ context.Context, req *model.CreateUserRequest, hash string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	if _, ok := r.users[req.Email]; ok {
		return nil, apperrors.Conflict("email already exists")
	}
	r.nextID++
	u := &model.User{
		ID:           string(rune('a' + r.nextID)),
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
	if r.err != nil {
		return nil, r.err
	}
	if u, ok := r.users[email]; ok {
		return u, nil
	}
	return nil, apperrors.NotFound("user not found")
}

func (r *memUserRepo) List(_ context.Context) ([]*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
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
	if r.err != nil {
		return 0, r.err
	}
	count := 0
	for _, u := range r.users {
		if u.Role == domainauth.Role(role) {
			count++
		}
	}
	return count, nil
}

func (r *memUserRepo) UpdatePassword(_ context.Context, email, hash string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return false, r.err
	}
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
	lists    int // number of List calls that reached the repo
	gets     int
}

func newMemContentRepo() *memContentRepo {
	return &memContentRepo{sections: map[model.SectionName]*model.Section{}}
}

func (r *memContentRepo) List(context.Context) ([]*model.Section, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lists++
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
	r.gets++
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

type memCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	getErr  error
}

func newMemCache() *memCache {
	return &memCache{entries: map[string][]byte{}}
}

func (c *memCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}

func (c *memCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.entries[key], nil
}

func (c *memCache) Delete(_ context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	delete(c.entries, key)
	return ok, nil
}

func (c *memCache) Exists(_ context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok, nil
}

func (c *memCache) Health(context.Context) error { return nil }

type memBlogRepo struct {
	mu          sync.Mutex
	blogs       []*model.Blog
	nextID      int
	recentCalls int
}

func newMemBlogRepo() *memBlogRepo { return &memBlogRepo{} }

func (r *memBlogRepo) Create(_ context.Context, req *model.BlogWriteRequest, links model.ShareLinks) (*model.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	b := &model.Blog{
		ID:         string(rune('0' + r.nextID)),
		Image:      req.Image,
		ImageAlt:   req.ImageAlt,
		MainTag:    req.MainTag,
		Date:       req.Date,
		Heading:    req.Heading,
		Content:    req.Content,
		Tags:       req.Tags,
		ShareLinks: links,
		CreatedAt:  time.Now().Add(time.Duration(r.nextID) * time.Second),
	}
	// newest first, like the SQL ordering
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
	r.recentCalls++
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
	failAll bool
}

func newMemObjectStore() *memObjectStore {
	return &memObjectStore{objects: map[string][]byte{}}
}

func (s *memObjectStore) Upload(_ context.Context, params core.UploadParams) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll {
		return "", apperrors.Internal("bucket unavailable")
	}
	s.objects[params.Name] = params.Data
	return s.PublicURL(params.Name), nil
}

func (s *memObjectStore) List(context.Context) ([]model.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll {
		return nil, apperrors.Internal("bucket unavailable")
	}
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
	if s.failAll {
		return apperrors.Internal("bucket unavailable")
	}
	delete(s.objects, name)
	return nil
}

func (s *memObjectStore) PublicURL(name string) string {
	return "https://bucket.example/public/cms-images/" + name
}

// Compile-time conformance.
var (
	_ core.UserRepository    = (*memUserRepo)(nil)
	_ core.ContentRepository = (*memContentRepo)(nil)
	_ core.CacheRepository   = (*memCache)(nil)
	_ core.BlogRepository    = (*memBlogRepo)(nil)
	_ core.ObjectStore       = (*memObjectStore)(nil)
)
