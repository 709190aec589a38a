package repository

import (
	"context"
	"errors"
	"fmt"

	"pedalads/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ConsentRepo interface {
	Save(ctx context.Context, c *models.Consent) (*models.Consent, error)
	Latest(ctx context.Context, visitorID string) (*models.Consent, error)
}

type consentRepo struct{ db *pgxpool.Pool }

func NewConsentRepo(db *pgxpool.Pool) ConsentRepo { return &consentRepo{db: db} }

func (r *consentRepo) Save(ctx context.Context, c *models.Consent) (*models.Consent, error) {
	const q = `
		INSERT INTO cookie_consents (visitor_id, necessary, analytics, marketing, preferences, vendor, user_agent)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING visitor_id::text, necessary, analytics, marketing, preferences, vendor, created_at
	`
	var out models.Consent
	err := r.db.QueryRow(ctx, q,
		c.VisitorID, c.Necessary, c.Analytics, c.Marketing, c.Preferences, c.Vendor, c.UserAgent,
	).Scan(&out.VisitorID, &out.Necessary, &out.Analytics, &out.Marketing, &out.Preferences, &out.Vendor, &out.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert consent: %w", err)
	}
	return &out, nil
}

func (r *consentRepo) Latest(ctx context.Context, visitorID string) (*models.Consent, error) {
	const q = `
		SELECT visitor_id::text, necessary, analytics, marketing, preferences, vendor, created_at
		FROM cookie_consents
		WHERE visitor_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`
	var out models.Consent
	err := r.db.QueryRow(ctx, q, visitorID).Scan(
		&out.VisitorID, &out.Necessary, &out.Analytics, &out.Marketing, &out.Preferences, &out.Vendor, &out.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("latest consent: %w", err)
	}
	return &out, nil
}
