package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pedalads/internal/models"
	"pedalads/internal/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostRepo interface {
	Create(ctx context.Context, p *models.Post) (*models.Post, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	GetBySlug(ctx context.Context, slug string) (*models.Post, error)
	List(ctx context.Context) ([]*models.Post, error)
	ListPaginated(ctx context.Context, category string, limit, offset int) ([]*models.Post, int, error)
	Recent(ctx context.Context, limit int) ([]*models.Post, error)
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	Exists(ctx context.Context, id string) (bool, error)
	Update(ctx context.Context, id string, patch models.PostPatch) (*models.Post, error)
	Delete(ctx context.Context, id string) error
}

type postRepo struct{ db *pgxpool.Pool }

func NewPostRepo(db *pgxpool.Pool) PostRepo { return &postRepo{db: db} }

const postColumns = `id::text, title, slug, excerpt, author, category, content, featured, image_url, read_time, date, created_at, updated_at`

// postRow mirrors the table with nullable columns as pointers.
type postRow struct {
	ID        string
	Title     string
	Slug      string
	Excerpt   *string
	Author    string
	Category  *string
	Content   string
	Featured  *bool
	ImageURL  *string
	ReadTime  *int32
	Date      *time.Time
	CreatedAt *time.Time
	UpdatedAt *time.Time
}

func scanPost(s rowScanner) (*models.Post, error) {
	var r postRow
	if err := s.Scan(
		&r.ID, &r.Title, &r.Slug, &r.Excerpt, &r.Author, &r.Category, &r.Content,
		&r.Featured, &r.ImageURL, &r.ReadTime, &r.Date, &r.CreatedAt, &r.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return r.toModel(time.Now()), nil
}

// toModel fills NULL columns: timestamps become now, strings become empty
// and a missing read time is recomputed from the content.
func (r postRow) toModel(now time.Time) *models.Post {
	p := &models.Post{
		ID:       r.ID,
		Title:    r.Title,
		Slug:     r.Slug,
		Excerpt:  deref(r.Excerpt),
		Author:   r.Author,
		Category: deref(r.Category),
		Content:  r.Content,
		ImageURL: deref(r.ImageURL),
	}
	if r.Featured != nil {
		p.Featured = *r.Featured
	}
	if r.ReadTime != nil && *r.ReadTime >= 1 {
		p.ReadTime = int(*r.ReadTime)
	} else {
		p.ReadTime = utils.ReadTime(r.Content)
	}
	p.CreatedAt = timeOr(r.CreatedAt, now)
	p.UpdatedAt = timeOr(r.UpdatedAt, p.CreatedAt)
	p.Date = timeOr(r.Date, p.CreatedAt)
	return p
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func timeOr(t *time.Time, fallback time.Time) time.Time {
	if t == nil || t.IsZero() {
		return fallback
	}
	return *t
}

func nullable(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func (r *postRepo) Create(ctx context.Context, p *models.Post) (*models.Post, error) {
	q := `
		INSERT INTO posts (title, slug, excerpt, author, category, content, featured, image_url, read_time, date)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9, COALESCE($10, NOW()))
		RETURNING ` + postColumns

	var date *time.Time
	if !p.Date.IsZero() {
		date = &p.Date
	}

	out, err := scanPost(r.db.QueryRow(ctx, q,
		p.Title,
		p.Slug,
		p.Excerpt,
		p.Author,
		nullable(p.Category),
		p.Content,
		p.Featured,
		nullable(p.ImageURL),
		p.ReadTime,
		date,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("insert post: %w", err)
	}
	return out, nil
}

func (r *postRepo) GetByID(ctx context.Context, id string) (*models.Post, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	q := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`
	p, err := scanPost(r.db.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post by id: %w", err)
	}
	return p, nil
}

func (r *postRepo) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	q := `SELECT ` + postColumns + ` FROM posts WHERE lower(slug) = lower($1)`
	p, err := scanPost(r.db.QueryRow(ctx, q, strings.TrimSpace(slug)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post by slug: %w", err)
	}
	return p, nil
}

func (r *postRepo) List(ctx context.Context) ([]*models.Post, error) {
	q := `SELECT ` + postColumns + ` FROM posts ORDER BY created_at DESC`
	return r.query(ctx, q)
}

func (r *postRepo) Recent(ctx context.Context, limit int) ([]*models.Post, error) {
	q := `SELECT ` + postColumns + ` FROM posts ORDER BY created_at DESC LIMIT $1`
	return r.query(ctx, q, limit)
}

func (r *postRepo) ListPaginated(ctx context.Context, category string, limit, offset int) ([]*models.Post, int, error) {
	where := []string{}
	args := []interface{}{}
	i := 1

	if category = strings.TrimSpace(category); category != "" {
		where = append(where, fmt.Sprintf("lower(category) = lower($%d)", i))
		args = append(args, category)
		i++
	}

	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM posts`+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	q := `SELECT ` + postColumns + ` FROM posts` + cond +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", i, i+1)
	args = append(args, limit, offset)

	list, err := r.query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *postRepo) query(ctx context.Context, q string, args ...interface{}) ([]*models.Post, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	list := []*models.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *postRepo) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	q := `SELECT EXISTS(SELECT 1 FROM posts WHERE lower(slug) = lower($1))`
	args := []interface{}{slug}
	if excludeID != "" {
		q = `SELECT EXISTS(SELECT 1 FROM posts WHERE lower(slug) = lower($1) AND id::text <> $2)`
		args = append(args, excludeID)
	}
	var ok bool
	if err := r.db.QueryRow(ctx, q, args...).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func (r *postRepo) Exists(ctx context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}
	const q = `SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)`
	var ok bool
	if err := r.db.QueryRow(ctx, q, id).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

// Update writes only the columns set in patch and always bumps updated_at.
func (r *postRepo) Update(ctx context.Context, id string, patch models.PostPatch) (*models.Post, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	sets, args := patchAssignments(patch)
	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)

	q := fmt.Sprintf(`UPDATE posts SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), postColumns)

	p, err := scanPost(r.db.QueryRow(ctx, q, args...))
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return nil, ErrNotFound
	case isUniqueViolation(err):
		return nil, ErrSlugTaken
	case err != nil:
		return nil, fmt.Errorf("update post: %w", err)
	}
	return p, nil
}

// patchAssignments returns "col = $n" fragments numbered from 1.
func patchAssignments(patch models.PostPatch) ([]string, []interface{}) {
	sets := []string{}
	args := []interface{}{}
	add := func(col string, v interface{}) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Slug != nil {
		add("slug", *patch.Slug)
	}
	if patch.Excerpt != nil {
		add("excerpt", *patch.Excerpt)
	}
	if patch.Author != nil {
		add("author", *patch.Author)
	}
	if patch.Category != nil {
		add("category", nullable(*patch.Category))
	}
	if patch.ImageURL != nil {
		add("image_url", nullable(*patch.ImageURL))
	}
	if patch.Content != nil {
		add("content", *patch.Content)
	}
	if patch.ReadTime != nil {
		add("read_time", *patch.ReadTime)
	}
	if patch.Featured != nil {
		add("featured", *patch.Featured)
	}
	if patch.Date != nil {
		add("date", *patch.Date)
	}
	return sets, args
}

func (r *postRepo) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	tag, err := r.db.Exec(ctx, "DELETE FROM posts WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
