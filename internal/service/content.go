package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/evenbetter/dtwin-cms/internal/core"
	"github.com/evenbetter/dtwin-cms/internal/domain/model"
	apperrors "github.com/evenbetter/dtwin-cms/internal/errors"
)

// Cache keys for website content. The list and the per-section entries are
// invalidated together on every write.
const (
	contentCacheKeyAll    = "content:all"
	contentCacheKeyPrefix = "content:section:"
)

// ContentServiceOptions groups dependencies for ContentService.
type ContentServiceOptions struct {
	Repo   core.ContentRepository
	Cache  core.CacheRepository // optional; nil disables caching
	Config ContentServiceConfig
}

// ContentServiceConfig holds cache tuning.
type ContentServiceConfig struct {
	CacheTTL time.Duration
	Logger   *slog.Logger
}

// ContentService orchestrates website content reads and writes with a
// read-through cache. Cache failures never fail a request; the database
// remains the source of truth.
type ContentService struct {
	repo   core.ContentRepository
	cache  core.CacheRepository
	ttl    time.Duration
	logger *slog.Logger
}

// NewContentService constructs a new ContentService.
func NewContentService(opts ContentServiceOptions) *ContentService {
	if opts.Repo == nil {
		panic("ContentService requires a content repository")
	}
	ttl := opts.Config.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	logger := opts.Config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ContentService{
		repo:   opts.Repo,
		cache:  opts.Cache,
		ttl:    ttl,
		logger: logger.With("component", "content_service"),
	}
}

// List returns every section, serving from cache when possible.
func (s *ContentService) List(ctx context.Context) ([]*model.Section, error) {
	if cached, ok := s.cacheGet(ctx, contentCacheKeyAll); ok {
		var sections []*model.Section
		if err := json.Unmarshal(cached, &sections); err == nil {
			return sections, nil
		}
		// Corrupt entry; fall through to the database.
		s.cacheDelete(ctx, contentCacheKeyAll)
	}

	sections, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cachePut(ctx, contentCacheKeyAll, sections)
	return sections, nil
}

// GetSection returns one section by name, serving from cache when possible.
func (s *ContentService) GetSection(ctx context.Context, name model.SectionName) (*model.Section, error) {
	key := contentCacheKeyPrefix + string(name)
	if cached, ok := s.cacheGet(ctx, key); ok {
		var section model.Section
		if err := json.Unmarshal(cached, &section); err == nil {
			return &section, nil
		}
		s.cacheDelete(ctx, key)
	}

	section, err := s.repo.GetBySection(ctx, name)
	if err != nil {
		return nil, err
	}
	s.cachePut(ctx, key, section)
	return section, nil
}

// CreateSection adds a new section after validating the payload against
// its schema, then invalidates the cache.
func (s *ContentService) CreateSection(ctx context.Context, req *model.CreateSectionRequest) (*model.Section, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	section, err := s.repo.Create(ctx, model.SectionName(req.Section), req.Content)
	if err != nil {
		if apperrors.IsConflict(err) {
			return nil, apperrors.Conflictf("section %q already exists", req.Section)
		}
		return nil, fmt.Errorf("create section: %w", err)
	}
	s.invalidate(ctx, section.Name)
	return section, nil
}

// UpdateSection replaces a section's payload after validating it against
// the section's schema, then invalidates the cache.
func (s *ContentService) UpdateSection(ctx context.Context, name model.SectionName, req *model.UpdateSectionRequest) (*model.Section, error) {
	if err := req.Validate(name); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	section, err := s.repo.Update(ctx, name, req.Content)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, name)
	return section, nil
}

func (s *ContentService) cacheGet(ctx context.Context, key string) ([]byte, bool) {
	if s.cache == nil {
		return nil, false
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.WarnContext(ctx, "cache get failed", "key", key, "err", err)
		return nil, false
	}
	return data, data != nil
}

func (s *ContentService) cachePut(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
		s.logger.WarnContext(ctx, "cache set failed", "key", key, "err", err)
	}
}

func (s *ContentService) cacheDelete(ctx context.Context, key string) {
	if s.cache == nil {
		return
	}
	if _, err := s.cache.Delete(ctx, key); err != nil {
		s.logger.WarnContext(ctx, "cache delete failed", "key", key, "err", err)
	}
}

func (s *ContentService) invalidate(ctx context.Context, name model.SectionName) {
	s.cacheDelete(ctx, contentCacheKeyAll)
	s.cacheDelete(ctx, contentCacheKeyPrefix+string(name))
}
