package handlers

import (
	"net/http"

	"pedalads/internal/models"
	"pedalads/internal/services"
	helpers "pedalads/internal/utils/helpers"

	"github.com/gorilla/mux"
)

type PostHandler struct {
	svc services.PostService
}

func NewPostHandler(svc services.PostService) *PostHandler {
	return &PostHandler{svc: svc}
}

// List
// @Summary      List posts
// @Description  Paginated blog posts, newest first. Store errors yield an empty page.
// @Tags         posts
// @Produce      json
// @Param        page      query  int     false  "Page, from 1"
// @Param        perPage   query  int     false  "Items per page (default 9, max 50)"
// @Param        category  query  string  false  "Category filter, case-insensitive"
// @Success      200  {object}  helpers.Response{data=models.PostPage}
// @Router       /api/posts [get]
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	page := h.svc.ListPage(r.Context(),
		r.URL.Query().Get("category"),
		queryInt(r, "page", 1),
		queryInt(r, "perPage", services.DefaultPerPage),
	)
	helpers.JSON(w, http.StatusOK, page)
}

// Recent
// @Summary      Recent posts
// @Tags         posts
// @Produce      json
// @Param        limit  query  int  false  "How many (default 3)"
// @Success      200  {object}  helpers.Response{data=[]models.Post}
// @Router       /api/posts/recent [get]
func (h *PostHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", services.DefaultRecentLimit)
	if limit > services.MaxPerPage {
		limit = services.MaxPerPage
	}
	helpers.JSON(w, http.StatusOK, h.svc.GetRecent(r.Context(), limit))
}

// GetBySlug
// @Summary      Post by slug
// @Description  Slug matching is case-insensitive.
// @Tags         posts
// @Produce      json
// @Param        slug  path  string  true  "Post slug"
// @Success      200  {object}  helpers.Response{data=models.Post}
// @Failure      404  {object}  helpers.Response
// @Router       /api/posts/{slug} [get]
func (h *PostHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	post := h.svc.GetBySlug(r.Context(), mux.Vars(r)["slug"])
	if post == nil {
		helpers.Error(w, http.StatusNotFound, "Post not found")
		return
	}
	helpers.JSON(w, http.StatusOK, post)
}

// GetByID
// @Summary      Post by id
// @Tags         posts
// @Produce      json
// @Param        id  path  string  true  "Post id (uuid)"
// @Success      200  {object}  helpers.Response{data=models.Post}
// @Failure      404  {object}  helpers.Response
// @Router       /api/posts/id/{id} [get]
func (h *PostHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	post := h.svc.GetByID(r.Context(), mux.Vars(r)["id"])
	if post == nil {
		helpers.Error(w, http.StatusNotFound, "Post not found")
		return
	}
	helpers.JSON(w, http.StatusOK, post)
}

// Create
// @Summary      Create post
// @Description  Sanitises, validates, derives slug and read time. 409 when the slug is taken, 429 when rate limited.
// @Tags         admin-posts
// @Accept       json
// @Produce      json
// @Param        body  body  models.CreatePostRequest  true  "Post"
// @Success      200  {object}  models.Result
// @Failure      400  {object}  models.Result
// @Failure      409  {object}  models.Result
// @Failure      429  {object}  models.Result
// @Security     ApiKeyAuth
// @Router       /api/admin/posts [post]
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badJSON(w)
		return
	}
	writeResult(w, h.svc.Create(r.Context(), req))
}

// Update
// @Summary      Update post
// @Description  Partial update: only fields present in the body are written. updatedAt is always refreshed.
// @Tags         admin-posts
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "Post id"
// @Param        body  body  models.UpdatePostRequest  true  "Fields to change"
// @Success      200  {object}  models.Result
// @Failure      400  {object}  models.Result
// @Failure      404  {object}  models.Result
// @Failure      409  {object}  models.Result
// @Security     ApiKeyAuth
// @Router       /api/admin/posts/{id} [patch]
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdatePostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badJSON(w)
		return
	}
	writeResult(w, h.svc.Update(r.Context(), mux.Vars(r)["id"], req))
}

// Delete
// @Summary      Delete post
// @Tags         admin-posts
// @Produce      json
// @Param        id  path  string  true  "Post id"
// @Success      200  {object}  models.Result
// @Failure      404  {object}  models.Result
// @Security     ApiKeyAuth
// @Router       /api/admin/posts/{id} [delete]
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	writeResult(w, h.svc.Delete(r.Context(), mux.Vars(r)["id"]))
}

// Preview
// @Summary      Preview post HTML
// @Description  Returns sanitised HTML without storing anything.
// @Tags         admin-posts
// @Accept       json
// @Produce      json
// @Param        body  body  map[string]string  true  "Raw HTML in content"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  models.Result
// @Security     ApiKeyAuth
// @Router       /api/admin/posts/preview [post]
func (h *PostHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		badJSON(w)
		return
	}
	helpers.Raw(w, http.StatusOK, map[string]string{"content": h.svc.PreviewHTML(req.Content)})
}
