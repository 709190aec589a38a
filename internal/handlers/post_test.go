package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pedalads/internal/models"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePostService struct {
	posts       map[string]*models.Post
	lastPage    [3]interface{}
	lastCreate  models.CreatePostRequest
	lastUpdate  models.UpdatePostRequest
	createRes   models.Result
	recentLimit int
}

func (f *fakePostService) List(context.Context) []*models.Post { return nil }

func (f *fakePostService) ListPage(_ context.Context, category string, page, perPage int) models.PostPage {
	f.lastPage = [3]interface{}{category, page, perPage}
	return models.PostPage{Items: []*models.Post{}, Page: page, PerPage: perPage}
}

func (f *fakePostService) GetBySlug(_ context.Context, slug string) *models.Post {
	return f.posts[strings.ToLower(slug)]
}

func (f *fakePostService) GetByID(_ context.Context, id string) *models.Post {
	for _, p := range f.posts {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (f *fakePostService) GetRecent(_ context.Context, limit int) []*models.Post {
	f.recentLimit = limit
	return []*models.Post{}
}

func (f *fakePostService) Create(_ context.Context, req models.CreatePostRequest) models.Result {
	f.lastCreate = req
	return f.createRes
}

func (f *fakePostService) Update(_ context.Context, id string, req models.UpdatePostRequest) models.Result {
	f.lastUpdate = req
	if f.GetByID(context.Background(), id) == nil {
		return models.Fail(http.StatusNotFound, "Post not found", nil)
	}
	return models.OK("Post updated successfully")
}

func (f *fakePostService) Delete(_ context.Context, id string) models.Result {
	return models.OK("Post deleted successfully")
}

func (f *fakePostService) PreviewHTML(raw string) string { return "clean:" + raw }

func postRouter(svc *fakePostService) *mux.Router {
	h := NewPostHandler(svc)
	r := mux.NewRouter()
	r.HandleFunc("/api/posts", h.List).Methods(http.MethodGet)
	r.HandleFunc("/api/posts/recent", h.Recent).Methods(http.MethodGet)
	r.HandleFunc("/api/posts/id/{id}", h.GetByID).Methods(http.MethodGet)
	r.HandleFunc("/api/posts/{slug}", h.GetBySlug).Methods(http.MethodGet)
	r.HandleFunc("/api/admin/posts", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/api/admin/posts/preview", h.Preview).Methods(http.MethodPost)
	r.HandleFunc("/api/admin/posts/{id}", h.Update).Methods(http.MethodPatch)
	return r
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(v))
}

func TestPostHandlerGetBySlug(t *testing.T) {
	svc := &fakePostService{posts: map[string]*models.Post{
		"how-bicycles-win": {ID: "p1", Slug: "how-bicycles-win", Title: "How Bicycles Win"},
	}}
	r := postRouter(svc)

	rec := do(r, http.MethodGet, "/api/posts/How-Bicycles-Win", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Data models.Post `json:"data"`
	}
	decode(t, rec, &body)
	assert.Equal(t, "p1", body.Data.ID)

	rec = do(r, http.MethodGet, "/api/posts/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(r, http.MethodGet, "/api/posts/id/p1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPostHandlerListPassesQuery(t *testing.T) {
	svc := &fakePostService{}
	r := postRouter(svc)

	rec := do(r, http.MethodGet, "/api/posts?page=2&perPage=5&category=Riders", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, [3]interface{}{"Riders", 2, 5}, svc.lastPage)

	do(r, http.MethodGet, "/api/posts?page=abc", "")
	assert.Equal(t, [3]interface{}{"", 1, 9}, svc.lastPage)

	do(r, http.MethodGet, "/api/posts/recent?limit=500", "")
	assert.Equal(t, 50, svc.recentLimit)
}

func TestPostHandlerCreateUsesResultStatus(t *testing.T) {
	svc := &fakePostService{createRes: models.Fail(http.StatusConflict, "A post with this title already exists", nil)}
	r := postRouter(svc)

	rec := do(r, http.MethodPost, "/api/admin/posts", `{"title":"How Bicycles Win","author":"A","content":"<p>x</p>","featured":true}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	var res models.Result
	decode(t, rec, &res)
	assert.Equal(t, "A post with this title already exists", res.Error)
	assert.Equal(t, 409, res.Status)
	assert.Equal(t, "How Bicycles Win", svc.lastCreate.Title)
	assert.True(t, svc.lastCreate.Featured)
}

func TestPostHandlerRejectsBadJSON(t *testing.T) {
	r := postRouter(&fakePostService{})

	for _, body := range []string{`{"title":`, `{"title":"a"}{"title":"b"}`, `[]`} {
		rec := do(r, http.MethodPost, "/api/admin/posts", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestPostHandlerUpdatePresence(t *testing.T) {
	svc := &fakePostService{posts: map[string]*models.Post{"a": {ID: "p1", Slug: "a"}}}
	r := postRouter(svc)

	rec := do(r, http.MethodPatch, "/api/admin/posts/p1", `{"featured":false,"excerpt":""}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.lastUpdate.Featured)
	assert.False(t, *svc.lastUpdate.Featured)
	require.NotNil(t, svc.lastUpdate.Excerpt)
	assert.Nil(t, svc.lastUpdate.Title)

	rec = do(r, http.MethodPatch, "/api/admin/posts/nope", `{}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPostHandlerPreview(t *testing.T) {
	rec := do(postRouter(&fakePostService{}), http.MethodPost, "/api/admin/posts/preview", `{"content":"<p>x</p>"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	decode(t, rec, &body)
	assert.Equal(t, "clean:<p>x</p>", body["content"])
}
