package data

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evenbetter/dtwin-cms/internal/domain/model"
	apperrors "github.com/evenbetter/dtwin-cms/internal/errors"
)

func blogRows(id, heading string) *sqlmock.Rows {
	links := model.DeriveShareLinks(heading)
	shareJSON := `{"linkedin":"` + links.LinkedIn + `","twitter":"` + links.Twitter +
		`","facebook":"` + links.Facebook + `","instagram":"` + links.Instagram + `"}`
	return sqlmock.NewRows([]string{
		"id", "image", "image_alt", "main_tag", "date", "heading", "content", "tags", "share_links", "created_at",
	}).AddRow(id, "/img.png", "alt", "ai", "2026-08-01", heading, "body",
		[]byte(`["ai","twins"]`), []byte(shareJSON), time.Now())
}

func TestBlogRepo_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBlogRepo(db)

	req := &model.BlogWriteRequest{
		Image:   "/img.png",
		MainTag: "ai",
		Heading: "Digital Twins",
		Content: "body",
		Tags:    []string{"ai", "twins"},
	}
	links := model.DeriveShareLinks(req.Heading)

	mock.ExpectQuery(`INSERT INTO blogs`).
		WillReturnRows(blogRows("b1", req.Heading))

	b, err := repo.Create(context.Background(), req, links)
	require.NoError(t, err)
	assert.Equal(t, "b1", b.ID)
	assert.Equal(t, []string{"ai", "twins"}, b.Tags)
	assert.Contains(t, b.ShareLinks.Twitter, "Digital-Twins")
}

func TestBlogRepo_Create_InvalidRequest(t *testing.T) {
	db, _ := newMockDB(t)
	repo := NewBlogRepo(db)

	_, err := repo.Create(context.Background(), &model.BlogWriteRequest{Heading: "x"}, model.ShareLinks{})
	assert.Error(t, err)

	_, err = repo.Create(context.Background(), nil, model.ShareLinks{})
	assert.Error(t, err)
}

func TestBlogRepo_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBlogRepo(db)

	mock.ExpectQuery(`SELECT id, image, image_alt, main_tag, date, heading, content, tags, share_links, created_at FROM blogs WHERE id = \$1`).
		WithArgs("b1").
		WillReturnRows(blogRows("b1", "A Post"))

	b, err := repo.GetByID(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, "A Post", b.Heading)
}

func TestBlogRepo_GetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBlogRepo(db)

	mock.ExpectQuery(`SELECT .+ FROM blogs WHERE id = \$1`).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "ghost")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestBlogRepo_ListRecent(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBlogRepo(db)

	mock.ExpectQuery(`SELECT .+ FROM blogs ORDER BY created_at DESC LIMIT \$1`).
		WithArgs(3).
		WillReturnRows(blogRows("b1", "First").AddRow(
			"b2", "", "", "iot", "2026-07-01", "Second", "body",
			[]byte(`[]`), []byte(`{}`), time.Now()))

	blogs, err := repo.ListRecent(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, blogs, 2)
	assert.Empty(t, blogs[1].Tags)
}

func TestBlogRepo_Update(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBlogRepo(db)

	req := &model.BlogWriteRequest{Heading: "Renamed Post", Content: "body"}
	mock.ExpectQuery(`UPDATE blogs`).
		WillReturnRows(blogRows("b1", req.Heading))

	b, err := repo.Update(context.Background(), "b1", req, model.DeriveShareLinks(req.Heading))
	require.NoError(t, err)
	assert.Contains(t, b.ShareLinks.LinkedIn, "Renamed-Post")
}

func TestBlogRepo_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBlogRepo(db)

	mock.ExpectExec(`DELETE FROM blogs WHERE id = \$1`).
		WithArgs("b1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.Delete(context.Background(), "b1")
	require.NoError(t, err)
	assert.True(t, ok)

	mock.ExpectExec(`DELETE FROM blogs WHERE id = \$1`).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err = repo.Delete(context.Background(), "ghost")
	require.NoError(t, err)
	assert.False(t, ok)
}
