package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/evenbetter/dtwin-cms/internal/core"
	"github.com/evenbetter/dtwin-cms/internal/domain/model"
	apperrors "github.com/evenbetter/dtwin-cms/internal/errors"
)

// topCount fixes how many recent posts and tags the landing summary shows.
const topCount = 3

// BlogServiceOptions groups dependencies for BlogService.
type BlogServiceOptions struct {
	Repo core.BlogRepository
}

// BlogService orchestrates blog CRUD. Share links are always derived
// server-side from the heading; client-supplied values never survive.
type BlogService struct {
	repo core.BlogRepository
}

// NewBlogService constructs a new BlogService.
func NewBlogService(opts BlogServiceOptions) *BlogService {
	if opts.Repo == nil {
		panic("BlogService requires a blog repository")
	}
	return &BlogService{repo: opts.Repo}
}

// List returns every blog post, newest first.
func (s *BlogService) List(ctx context.Context) ([]*model.Blog, error) {
	return s.repo.List(ctx)
}

// Get returns one blog post by ID.
func (s *BlogService) Get(ctx context.Context, id string) (*model.Blog, error) {
	return s.repo.GetByID(ctx, id)
}

// Create adds a blog post with derived share links.
func (s *BlogService) Create(ctx context.Context, req *model.BlogWriteRequest) (*model.Blog, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	blog, err := s.repo.Create(ctx, req, model.DeriveShareLinks(req.Heading))
	if err != nil {
		return nil, fmt.Errorf("create blog: %w", err)
	}
	return blog, nil
}

// Update replaces a blog post, re-deriving share links from the new heading.
func (s *BlogService) Update(ctx context.Context, id string, req *model.BlogWriteRequest) (*model.Blog, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	blog, err := s.repo.Update(ctx, id, req, model.DeriveShareLinks(req.Heading))
	if err != nil {
		return nil, err
	}
	return blog, nil
}

// Delete removes a blog post.
func (s *BlogService) Delete(ctx context.Context, id string) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	if !ok {
		return apperrors.NotFound("blog not found")
	}
	return nil
}

// Top summarizes the blog landing page: the most recent posts plus the
// most used tags and main tags across all posts.
func (s *BlogService) Top(ctx context.Context) (*model.BlogTop, error) {
	recentPosts, err := s.repo.ListRecent(ctx, topCount)
	if err != nil {
		return nil, err
	}
	recent := make([]model.Blog, 0, len(recentPosts))
	for _, b := range recentPosts {
		recent = append(recent, *b)
	}

	// Tag counts cover every post, not just the recent slice.
	blogs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	tagCounts := map[string]int{}
	mainTagCounts := map[string]int{}
	for _, b := range blogs {
		for _, tag := range b.Tags {
			if tag != "" {
				tagCounts[tag]++
			}
		}
		if b.MainTag != "" {
			mainTagCounts[b.MainTag]++
		}
	}

	return &model.BlogTop{
		RecentPosts: recent,
		TopTags:     topK(tagCounts, topCount),
		TopMainTags: topK(mainTagCounts, topCount),
	}, nil
}

// topK returns the k most frequent keys, ties broken alphabetically so the
// result is stable.
func topK(counts map[string]int, k int) []string {
	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > k {
		keys = keys[:k]
	}
	return keys
}
