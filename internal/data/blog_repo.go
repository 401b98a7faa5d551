package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	apperrors "github.com/evenbetter/dtwin-cms/internal/errors"

	"github.com/evenbetter/dtwin-cms/internal/domain/model"
)

// BlogRepo provides database operations for blog posts.
type BlogRepo struct {
	DB *sql.DB
}

// NewBlogRepo creates a new BlogRepo.
func NewBlogRepo(db *sql.DB) *BlogRepo {
	return &BlogRepo{DB: db}
}

const blogColumns = `id, image, image_alt, main_tag, date, heading, content, tags, share_links, created_at`

// tags and share_links are stored as jsonb and marshaled at the boundary.
func scanBlog(row interface{ Scan(dest ...any) error }) (*model.Blog, error) {
	var b model.Blog
	var tags, shareLinks []byte
	if err := row.Scan(
		&b.ID, &b.Image, &b.ImageAlt, &b.MainTag, &b.Date,
		&b.Heading, &b.Content, &tags, &shareLinks, &b.CreatedAt,
	); err != nil {
		return nil, err
	}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &b.Tags); err != nil {
			return nil, fmt.Errorf("decode blog tags: %w", err)
		}
	}
	if len(shareLinks) > 0 {
		if err := json.Unmarshal(shareLinks, &b.ShareLinks); err != nil {
			return nil, fmt.Errorf("decode blog share links: %w", err)
		}
	}
	return &b, nil
}

func encodeBlogJSON(req *model.BlogWriteRequest, links model.ShareLinks) (tags, shareLinks []byte, err error) {
	t := req.Tags
	if t == nil {
		t = []string{}
	}
	tags, err = json.Marshal(t)
	if err != nil {
		return nil, nil, fmt.Errorf("encode blog tags: %w", err)
	}
	shareLinks, err = json.Marshal(links)
	if err != nil {
		return nil, nil, fmt.Errorf("encode blog share links: %w", err)
	}
	return tags, shareLinks, nil
}

// Create inserts a new blog post with server-derived share links.
func (r *BlogRepo) Create(ctx context.Context, req *model.BlogWriteRequest, links model.ShareLinks) (*model.Blog, error) {
	if req == nil {
		return nil, errors.New("blog write request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	tags, shareLinks, err := encodeBlogJSON(req, links)
	if err != nil {
		return nil, err
	}

	row := r.DB.QueryRowContext(ctx, `
		INSERT INTO blogs (image, image_alt, main_tag, date, heading, content, tags, share_links)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+blogColumns,
		req.Image, req.ImageAlt, req.MainTag, req.Date, req.Heading, req.Content, tags, shareLinks,
	)
	b, err := scanBlog(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create blog: %w", apperrors.MapDBError(err))
	}
	return b, nil
}

// GetByID retrieves a blog post by ID.
func (r *BlogRepo) GetByID(ctx context.Context, id string) (*model.Blog, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+blogColumns+` FROM blogs WHERE id = $1`, id)
	b, err := scanBlog(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("blog not found")
		}
		return nil, fmt.Errorf("failed to get blog: %w", apperrors.MapDBError(err))
	}
	return b, nil
}

// List retrieves all blog posts, newest first.
func (r *BlogRepo) List(ctx context.Context) ([]*model.Blog, error) {
	return r.list(ctx, `SELECT `+blogColumns+` FROM blogs ORDER BY created_at DESC`)
}

// ListRecent retrieves the newest posts, at most limit of them.
func (r *BlogRepo) ListRecent(ctx context.Context, limit int) ([]*model.Blog, error) {
	if limit <= 0 {
		limit = 3
	}
	return r.list(ctx,
		`SELECT `+blogColumns+` FROM blogs ORDER BY created_at DESC LIMIT $1`, limit)
}

func (r *BlogRepo) list(ctx context.Context, query string, args ...any) ([]*model.Blog, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list blogs: %w", apperrors.MapDBError(err))
	}
	defer rows.Close()

	var blogs []*model.Blog
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan blog: %w", err)
		}
		blogs = append(blogs, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list blogs: %w", err)
	}
	return blogs, nil
}

// Update replaces a blog post, re-deriving share links from the new heading.
func (r *BlogRepo) Update(ctx context.Context, id string, req *model.BlogWriteRequest, links model.ShareLinks) (*model.Blog, error) {
	if req == nil {
		return nil, errors.New("blog write request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	tags, shareLinks, err := encodeBlogJSON(req, links)
	if err != nil {
		return nil, err
	}

	row := r.DB.QueryRowContext(ctx, `
		UPDATE blogs
		SET image = $1, image_alt = $2, main_tag = $3, date = $4,
		    heading = $5, content = $6, tags = $7, share_links = $8
		WHERE id = $9
		RETURNING `+blogColumns,
		req.Image, req.ImageAlt, req.MainTag, req.Date, req.Heading, req.Content, tags, shareLinks, id,
	)
	b, err := scanBlog(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("blog not found")
		}
		return nil, fmt.Errorf("failed to update blog: %w", apperrors.MapDBError(err))
	}
	return b, nil
}

// Delete removes a blog post. Returns false when no post matches the ID.
func (r *BlogRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete blog: %w", apperrors.MapDBError(err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete blog: %w", err)
	}
	return affected > 0, nil
}
