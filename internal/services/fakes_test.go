package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"pedalads/internal/models"
	"pedalads/internal/ratelimit"
	"pedalads/internal/repository"

	"github.com/google/uuid"
)

// memPostRepo is an in-memory PostRepo with a unique, case-insensitive slug.
type memPostRepo struct {
	mu    sync.Mutex
	posts map[string]*models.Post
	now   func() time.Time

	failAll      error
	failExists   error
	skipPrecheck bool
	writes       int
}

func newMemPostRepo() *memPostRepo {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	tick := 0
	return &memPostRepo{
		posts: map[string]*models.Post{},
		now: func() time.Time {
			tick++
			return base.Add(time.Duration(tick) * time.Minute)
		},
	}
}

func clonePost(p *models.Post) *models.Post {
	c := *p
	return &c
}

func (m *memPostRepo) Create(_ context.Context, p *models.Post) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll != nil {
		return nil, m.failAll
	}
	for _, existing := range m.posts {
		if strings.EqualFold(existing.Slug, p.Slug) {
			return nil, repository.ErrSlugTaken
		}
	}
	now := m.now()
	c := clonePost(p)
	c.ID = uuid.NewString()
	c.CreatedAt, c.UpdatedAt = now, now
	if c.Date.IsZero() {
		c.Date = now
	}
	m.posts[c.ID] = c
	m.writes++
	return clonePost(c), nil
}

func (m *memPostRepo) GetByID(_ context.Context, id string) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll != nil {
		return nil, m.failAll
	}
	p, ok := m.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clonePost(p), nil
}

func (m *memPostRepo) GetBySlug(_ context.Context, slug string) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll != nil {
		return nil, m.failAll
	}
	for _, p := range m.posts {
		if strings.EqualFold(p.Slug, slug) {
			return clonePost(p), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memPostRepo) sorted() []*models.Post {
	out := make([]*models.Post, 0, len(m.posts))
	for _, p := range m.posts {
		out = append(out, clonePost(p))
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].CreatedAt.After(out[j-1].CreatedAt); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func (m *memPostRepo) List(_ context.Context) ([]*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll != nil {
		return nil, m.failAll
	}
	return m.sorted(), nil
}

func (m *memPostRepo) ListPaginated(_ context.Context, category string, limit, offset int) ([]*models.Post, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll != nil {
		return nil, 0, m.failAll
	}
	var all []*models.Post
	for _, p := range m.sorted() {
		if category == "" || strings.EqualFold(p.Category, category) {
			all = append(all, p)
		}
	}
	total := len(all)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (m *memPostRepo) Recent(ctx context.Context, limit int) ([]*models.Post, error) {
	list, err := m.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (m *memPostRepo) SlugExists(_ context.Context, slug, excludeID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failExists != nil {
		return false, m.failExists
	}
	if m.skipPrecheck {
		return false, nil
	}
	for id, p := range m.posts {
		if id != excludeID && strings.EqualFold(p.Slug, slug) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memPostRepo) Exists(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failExists != nil {
		return false, m.failExists
	}
	_, ok := m.posts[id]
	return ok, nil
}

func (m *memPostRepo) Update(_ context.Context, id string, patch models.PostPatch) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll != nil {
		return nil, m.failAll
	}
	p, ok := m.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if patch.Slug != nil {
		for otherID, o := range m.posts {
			if otherID != id && strings.EqualFold(o.Slug, *patch.Slug) {
				return nil, repository.ErrSlugTaken
			}
		}
	}
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&p.Title, patch.Title)
	set(&p.Slug, patch.Slug)
	set(&p.Excerpt, patch.Excerpt)
	set(&p.Author, patch.Author)
	set(&p.Category, patch.Category)
	set(&p.ImageURL, patch.ImageURL)
	set(&p.Content, patch.Content)
	if patch.ReadTime != nil {
		p.ReadTime = *patch.ReadTime
	}
	if patch.Featured != nil {
		p.Featured = *patch.Featured
	}
	if patch.Date != nil {
		p.Date = *patch.Date
	}
	p.UpdatedAt = m.now()
	m.writes++
	return clonePost(p), nil
}

func (m *memPostRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll != nil {
		return m.failAll
	}
	if _, ok := m.posts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.posts, id)
	m.writes++
	return nil
}

// brokenLimiter always errors.
type brokenLimiter struct{}

func (brokenLimiter) Allow(context.Context, string, ratelimit.Policy) (bool, error) {
	return false, errors.New("limiter offline")
}

// memLeadRepo stores leads in a slice.
type memLeadRepo struct {
	mu      sync.Mutex
	leads   []*models.Lead
	failErr error
}

func (m *memLeadRepo) Create(_ context.Context, l *models.Lead) (*models.Lead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return nil, m.failErr
	}
	c := *l
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now()
	m.leads = append(m.leads, &c)
	return &c, nil
}

func (m *memLeadRepo) Subscribe(ctx context.Context, l *models.Lead) (*models.Lead, error) {
	m.mu.Lock()
	for _, existing := range m.leads {
		if existing.Kind == models.LeadNewsletter && strings.EqualFold(existing.Email, l.Email) {
			m.mu.Unlock()
			return nil, repository.ErrAlreadySubscribed
		}
	}
	m.mu.Unlock()
	l.Kind = models.LeadNewsletter
	return m.Create(ctx, l)
}

func (m *memLeadRepo) List(_ context.Context, kind models.LeadKind, limit, offset int) ([]*models.Lead, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Lead
	for _, l := range m.leads {
		if kind == "" || l.Kind == kind {
			out = append(out, l)
		}
	}
	total := len(out)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return out[offset:end], total, nil
}

type recordingNotifier struct {
	mu    sync.Mutex
	leads []*models.Lead
}

func (r *recordingNotifier) NotifyLead(_ context.Context, l *models.Lead) {
	r.mu.Lock()
	r.leads = append(r.leads, l)
	r.mu.Unlock()
}

type memConsentRepo struct {
	saved   []*models.Consent
	failErr error
}

func (m *memConsentRepo) Save(_ context.Context, c *models.Consent) (*models.Consent, error) {
	if m.failErr != nil {
		return nil, m.failErr
	}
	out := *c
	out.CreatedAt = time.Now()
	m.saved = append(m.saved, &out)
	return &out, nil
}

func (m *memConsentRepo) Latest(_ context.Context, visitorID string) (*models.Consent, error) {
	for i := len(m.saved) - 1; i >= 0; i-- {
		if m.saved[i].VisitorID == visitorID {
			return m.saved[i], nil
		}
	}
	return nil, repository.ErrNotFound
}
