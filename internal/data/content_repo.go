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

// ContentRepo provides database operations for website content sections.
type ContentRepo struct {
	DB *sql.DB
}

// NewContentRepo creates a new ContentRepo.
func NewContentRepo(db *sql.DB) *ContentRepo {
	return &ContentRepo{DB: db}
}

const sectionColumns = `id, section, content, updated_at`

func scanSection(row interface{ Scan(dest ...any) error }) (*model.Section, error) {
	var s model.Section
	var name string
	var content []byte
	if err := row.Scan(&s.ID, &name, &content, &s.UpdatedAt); err != nil {
		return nil, err
	}
	s.Name = model.SectionName(name)
	s.Content = json.RawMessage(content)
	return &s, nil
}

// List retrieves every content section.
func (r *ContentRepo) List(ctx context.Context) ([]*model.Section, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+sectionColumns+` FROM website_content ORDER BY section`)
	if err != nil {
		return nil, fmt.Errorf("failed to list content: %w", apperrors.MapDBError(err))
	}
	defer rows.Close()

	var sections []*model.Section
	for rows.Next() {
		s, err := scanSection(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan section: %w", err)
		}
		sections = append(sections, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list content: %w", err)
	}
	return sections, nil
}

// GetBySection retrieves one section by name.
func (r *ContentRepo) GetBySection(ctx context.Context, name model.SectionName) (*model.Section, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+sectionColumns+` FROM website_content WHERE section = $1`, string(name))
	s, err := scanSection(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundf("section %q not found", name)
		}
		return nil, fmt.Errorf("failed to get section: %w", apperrors.MapDBError(err))
	}
	return s, nil
}

// Create inserts a new section with its payload.
func (r *ContentRepo) Create(ctx context.Context, name model.SectionName, content json.RawMessage) (*model.Section, error) {
	row := r.DB.QueryRowContext(ctx, `
		INSERT INTO website_content (section, content, updated_at)
		VALUES ($1, $2, now())
		RETURNING `+sectionColumns,
		string(name), []byte(content),
	)
	s, err := scanSection(row)
	if err != nil {
		// Unique violations surface as conflict errors via MapDBError.
		return nil, apperrors.MapDBError(err)
	}
	return s, nil
}

// Update replaces the payload of an existing section.
func (r *ContentRepo) Update(ctx context.Context, name model.SectionName, content json.RawMessage) (*model.Section, error) {
	row := r.DB.QueryRowContext(ctx, `
		UPDATE website_content
		SET content = $1, updated_at = now()
		WHERE section = $2
		RETURNING `+sectionColumns,
		[]byte(content), string(name),
	)
	s, err := scanSection(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundf("section %q not found", name)
		}
		return nil, fmt.Errorf("failed to update section: %w", apperrors.MapDBError(err))
	}
	return s, nil
}
