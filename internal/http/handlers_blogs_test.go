package httpx

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evenbetter/dtwin-cms/internal/domain/model"
)

func createBlog(t *testing.T, router http.Handler, heading, token string) model.Blog {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/blog",
		`{"heading":"`+heading+`","content":"body","main_tag":"ai","tags":["ai"]}`, token)
	require.Equal(t, http.StatusCreated, rec.Code)
	var blog model.Blog
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &blog))
	return blog
}

func TestBlogRoutes_CreateDerivesShareLinks(t *testing.T) {
	_, services := newTestRouter()
	router := NewRouter(services)

	blog := createBlog(t, router, "Digital Twins in Practice", editorToken)
	assert.Contains(t, blog.ShareLinks.LinkedIn, "Digital-Twins-in-Practice")
	assert.Contains(t, blog.ShareLinks.Twitter, "twitter.com")

	// Client-supplied share links never survive: the field is not even
	// accepted by the write request.
	rec := doJSON(t, router, http.MethodPost, "/api/blog",
		`{"heading":"X","content":"b","share_links":{"linkedin":"evil"}}`, editorToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBlogRoutes_RoleGates(t *testing.T) {
	_, services := newTestRouter()
	router := NewRouter(services)

	const post = `{"heading":"Post","content":"body"}`

	// Create: editor and admin yes, seo and anonymous no.
	rec := doJSON(t, router, http.MethodPost, "/api/blog", post, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = doJSON(t, router, http.MethodPost, "/api/blog", post, seoToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	blog := createBlog(t, router, "Editable", editorToken)

	// Update: editor allowed.
	rec = doJSON(t, router, http.MethodPut, "/api/blog/"+blog.ID,
		`{"heading":"Renamed","content":"body"}`, editorToken)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Delete: admin only.
	rec = doJSON(t, router, http.MethodDelete, "/api/blog/"+blog.ID, "", editorToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = doJSON(t, router, http.MethodDelete, "/api/blog/"+blog.ID, "", adminToken)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Gone now.
	rec = doJSON(t, router, http.MethodGet, "/api/blog/"+blog.ID, "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = doJSON(t, router, http.MethodDelete, "/api/blog/"+blog.ID, "", adminToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBlogRoutes_ListAndGetArePublic(t *testing.T) {
	_, services := newTestRouter()
	router := NewRouter(services)

	blog := createBlog(t, router, "Public Read", adminToken)

	rec := doJSON(t, router, http.MethodGet, "/api/blog", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var blogs []model.Blog
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &blogs))
	require.Len(t, blogs, 1)

	rec = doJSON(t, router, http.MethodGet, "/api/blog/"+blog.ID, "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBlogRoutes_Top(t *testing.T) {
	_, services := newTestRouter()
	router := NewRouter(services)

	for _, heading := range []string{"One", "Two", "Three", "Four"} {
		createBlog(t, router, heading, editorToken)
	}

	rec := doJSON(t, router, http.MethodGet, "/api/blog/top", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var top model.BlogTop
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &top))
	require.Len(t, top.RecentPosts, 3)
	assert.Equal(t, "Four", top.RecentPosts[0].Heading)
	assert.Equal(t, []string{"ai"}, top.TopTags)
}
