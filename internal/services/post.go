package services

import (
	"context"
	"errors"
	"net/http"

	"pedalads/internal/logger"
	"pedalads/internal/metrics"
	"pedalads/internal/models"
	"pedalads/internal/ratelimit"
	"pedalads/internal/repository"
	"pedalads/internal/utils"

	"go.uber.org/zap"
)

const (
	DefaultRecentLimit = 3
	DefaultPerPage     = 9
	MaxPerPage         = 50
	MaxPage            = 10000
	excerptLength      = 160
)

const (
	msgPostCreated   = "Post created successfully"
	msgPostUpdated   = "Post updated successfully"
	msgPostDeleted   = "Post deleted successfully"
	msgInvalidData   = "Invalid data"
	msgSlugConflict  = "A post with this title already exists"
	msgTooMany       = "Too many requests"
	msgCreateFailed  = "Failed to create post"
	msgUpdateFailed  = "Failed to update post"
	msgDeleteFailed  = "Failed to delete post"
	msgIDRequired    = "Post ID is required"
	msgPostNotFound  = "Post not found"
	errTitleNoLetter = "must contain at least one letter or digit"
)

type PostService interface {
	List(ctx context.Context) []*models.Post
	ListPage(ctx context.Context, category string, page, perPage int) models.PostPage
	GetBySlug(ctx context.Context, slug string) *models.Post
	GetByID(ctx context.Context, id string) *models.Post
	GetRecent(ctx context.Context, limit int) []*models.Post
	Create(ctx context.Context, req models.CreatePostRequest) models.Result
	Update(ctx context.Context, id string, req models.UpdatePostRequest) models.Result
	Delete(ctx context.Context, id string) models.Result
	PreviewHTML(rawHTML string) string
}

type postService struct {
	repo     repository.PostRepo
	sanitize *utils.Sanitizer
	guard    rateGuard
	metrics  *metrics.Metrics
}

func NewPostService(repo repository.PostRepo, limiter ratelimit.Limiter, m *metrics.Metrics) PostService {
	return &postService{
		repo:     repo,
		sanitize: utils.NewSanitizer(),
		guard:    rateGuard{limiter: limiter, metrics: m},
		metrics:  m,
	}
}

func (s *postService) PreviewHTML(rawHTML string) string {
	clean := s.sanitize.HTML(rawHTML)
	logger.Log.Debug("post preview sanitized",
		zap.Int("raw_len", len(rawHTML)),
		zap.Int("clean_len", len(clean)),
	)
	return clean
}

// List returns every post, newest first. Store errors yield an empty list.
func (s *postService) List(ctx context.Context) []*models.Post {
	list, err := s.repo.List(ctx)
	if err != nil {
		logger.WithCtx(ctx).Error("failed to list posts", zap.String("action", "listPosts"), zap.Error(err))
		return []*models.Post{}
	}
	return list
}

func (s *postService) ListPage(ctx context.Context, category string, page, perPage int) models.PostPage {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	out := models.PostPage{Items: []*models.Post{}, Page: page, PerPage: perPage}

	items, total, err := s.repo.ListPaginated(ctx, category, perPage, (page-1)*perPage)
	if err != nil {
		logger.WithCtx(ctx).Error("failed to list posts page",
			zap.String("action", "listPosts"),
			zap.String("category", category),
			zap.Int("page", page),
			zap.Error(err),
		)
		return out
	}
	out.Items = items
	out.Total = total
	out.TotalPages = (total + perPage - 1) / perPage
	return out
}

// GetBySlug matches case-insensitively and returns nil when the post is
// missing or the lookup fails.
func (s *postService) GetBySlug(ctx context.Context, slug string) *models.Post {
	p, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			logger.WithCtx(ctx).Error("failed to get post by slug",
				zap.String("action", "getPostBySlug"), zap.String("slug", slug), zap.Error(err))
		}
		return nil
	}
	return p
}

// GetByID follows the same nil-on-failure policy as GetBySlug.
func (s *postService) GetByID(ctx context.Context, id string) *models.Post {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			logger.WithCtx(ctx).Error("failed to get post by id",
				zap.String("action", "getPostById"), zap.String("id", id), zap.Error(err))
		}
		return nil
	}
	return p
}

func (s *postService) GetRecent(ctx context.Context, limit int) []*models.Post {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	list, err := s.repo.Recent(ctx, limit)
	if err != nil {
		logger.WithCtx(ctx).Error("failed to get recent posts", zap.String("action", "getRecentPosts"), zap.Error(err))
		return []*models.Post{}
	}
	for _, p := range list {
		if p.Excerpt == "" {
			p.Excerpt = utils.Excerpt(p.Content, excerptLength)
		}
		if p.ReadTime < 1 {
			p.ReadTime = utils.ReadTime(p.Content)
		}
	}
	return list
}

func (s *postService) Create(ctx context.Context, req models.CreatePostRequest) models.Result {
	log := logger.WithCtx(ctx).With(zap.String("action", "createPost"))

	if !s.guard.allow(ctx, ratelimit.BlogPost) {
		return models.Fail(http.StatusTooManyRequests, msgTooMany, nil)
	}

	req.Title = s.sanitize.Text(req.Title)
	req.Excerpt = s.sanitize.Text(req.Excerpt)
	req.Author = s.sanitize.Text(req.Author)
	req.Category = s.sanitize.Text(req.Category)
	req.ImageURL = s.sanitize.Text(req.ImageURL)
	req.Content = s.sanitize.HTML(req.Content)

	if details := utils.ValidateStruct(req); details != nil {
		log.Warn("post validation failed", zap.Any("details", details))
		return models.Fail(http.StatusBadRequest, msgInvalidData, details)
	}

	slug := utils.Slugify(req.Title)
	if slug == "" {
		return models.Fail(http.StatusBadRequest, msgInvalidData, map[string]string{"title": errTitleNoLetter})
	}

	// The unique index decides; this only avoids a doomed insert.
	taken, err := s.repo.SlugExists(ctx, slug, "")
	if err != nil {
		log.Warn("slug pre-check failed, relying on insert", zap.String("slug", slug), zap.Error(err))
	} else if taken {
		log.Info("slug already taken", zap.String("slug", slug))
		return models.Fail(http.StatusConflict, msgSlugConflict, nil)
	}

	post := &models.Post{
		Title:    req.Title,
		Slug:     slug,
		Excerpt:  req.Excerpt,
		Author:   req.Author,
		Category: req.Category,
		Content:  req.Content,
		Featured: req.Featured,
		ImageURL: req.ImageURL,
		ReadTime: utils.ReadTime(req.Content),
	}
	if req.Date != nil {
		post.Date = req.Date.UTC()
	}

	created, err := s.repo.Create(ctx, post)
	if errors.Is(err, repository.ErrSlugTaken) {
		log.Info("slug taken at insert", zap.String("slug", slug))
		return models.Fail(http.StatusConflict, msgSlugConflict, nil)
	}
	if err != nil {
		log.Error("failed to insert post", zap.String("slug", slug), zap.Error(err))
		return models.Fail(http.StatusInternalServerError, msgCreateFailed, nil)
	}

	s.metrics.RecordPostCreated(ctx, created.Category)
	log.Info("post created", zap.String("id", created.ID), zap.String("slug", created.Slug))
	return models.OK(msgPostCreated).WithData(created)
}

func (s *postService) Update(ctx context.Context, id string, req models.UpdatePostRequest) models.Result {
	log := logger.WithCtx(ctx).With(zap.String("action", "updatePost"), zap.String("id", id))

	if id == "" {
		return models.Fail(http.StatusBadRequest, msgIDRequired, nil)
	}

	req.Title = s.sanitize.TextPtr(req.Title)
	req.Excerpt = s.sanitize.TextPtr(req.Excerpt)
	req.Author = s.sanitize.TextPtr(req.Author)
	req.Category = s.sanitize.TextPtr(req.Category)
	req.ImageURL = s.sanitize.TextPtr(req.ImageURL)
	req.Content = s.sanitize.HTMLPtr(req.Content)

	if details := utils.ValidateStruct(req); details != nil {
		log.Warn("post update validation failed", zap.Any("details", details))
		return models.Fail(http.StatusBadRequest, msgInvalidData, details)
	}

	patch := models.PostPatch{
		Title:    req.Title,
		Excerpt:  req.Excerpt,
		Author:   req.Author,
		Category: req.Category,
		ImageURL: req.ImageURL,
		Content:  req.Content,
		Featured: req.Featured,
	}
	if req.Date != nil {
		d := req.Date.UTC()
		patch.Date = &d
	}

	if req.Title != nil {
		slug := utils.Slugify(*req.Title)
		if slug == "" {
			return models.Fail(http.StatusBadRequest, msgInvalidData, map[string]string{"title": errTitleNoLetter})
		}
		// A missing post is reported before a slug conflict.
		exists, err := s.repo.Exists(ctx, id)
		if err != nil {
			log.Warn("existence check failed, relying on update", zap.Error(err))
		} else if !exists {
			log.Info("post to update not found")
			return models.Fail(http.StatusNotFound, msgPostNotFound, nil)
		}
		taken, err := s.repo.SlugExists(ctx, slug, id)
		if err != nil {
			log.Warn("slug pre-check failed, relying on update", zap.String("slug", slug), zap.Error(err))
		} else if taken {
			return models.Fail(http.StatusConflict, msgSlugConflict, nil)
		}
		patch.Slug = &slug
	}
	if req.Content != nil {
		rt := utils.ReadTime(*req.Content)
		patch.ReadTime = &rt
	}

	updated, err := s.repo.Update(ctx, id, patch)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		log.Info("post to update not found")
		return models.Fail(http.StatusNotFound, msgPostNotFound, nil)
	case errors.Is(err, repository.ErrSlugTaken):
		return models.Fail(http.StatusConflict, msgSlugConflict, nil)
	case err != nil:
		log.Error("failed to update post", zap.Error(err))
		return models.Fail(http.StatusInternalServerError, msgUpdateFailed, nil)
	}

	log.Info("post updated", zap.Bool("fields_changed", !patch.Empty()), zap.Time("updated_at", updated.UpdatedAt))
	return models.OK(msgPostUpdated).WithData(updated)
}

func (s *postService) Delete(ctx context.Context, id string) models.Result {
	log := logger.WithCtx(ctx).With(zap.String("action", "deletePost"), zap.String("id", id))

	if id == "" {
		return models.Fail(http.StatusBadRequest, msgIDRequired, nil)
	}

	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		log.Error("failed to check post existence", zap.Error(err))
		return models.Fail(http.StatusInternalServerError, msgDeleteFailed, nil)
	}
	if !exists {
		log.Info("post to delete not found")
		return models.Fail(http.StatusNotFound, msgPostNotFound, nil)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.Fail(http.StatusNotFound, msgPostNotFound, nil)
		}
		log.Error("failed to delete post", zap.Error(err))
		return models.Fail(http.StatusInternalServerError, msgDeleteFailed, nil)
	}

	log.Info("post deleted")
	return models.OK(msgPostDeleted)
}
