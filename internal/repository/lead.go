package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"pedalads/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type LeadRepo interface {
	Create(ctx context.Context, l *models.Lead) (*models.Lead, error)
	// Subscribe stores a newsletter lead, returning ErrAlreadySubscribed
	// when the address is already on the list.
	Subscribe(ctx context.Context, l *models.Lead) (*models.Lead, error)
	List(ctx context.Context, kind models.LeadKind, limit, offset int) ([]*models.Lead, int, error)
}

type leadRepo struct{ db *pgxpool.Pool }

func NewLeadRepo(db *pgxpool.Pool) LeadRepo { return &leadRepo{db: db} }

const leadColumns = `id::text, kind, name, email, phone, company, city, message, metadata, created_at`

func scanLead(s rowScanner) (*models.Lead, error) {
	var (
		l       models.Lead
		kind    string
		metaRaw []byte
	)
	if err := s.Scan(&l.ID, &kind, &l.Name, &l.Email, &l.Phone, &l.Company, &l.City, &l.Message, &metaRaw, &l.CreatedAt); err != nil {
		return nil, err
	}
	l.Kind = models.LeadKind(kind)
	_ = json.Unmarshal(metaRaw, &l.Metadata)
	return &l, nil
}

func (r *leadRepo) Create(ctx context.Context, l *models.Lead) (*models.Lead, error) {
	q := `
		INSERT INTO leads (kind, name, email, phone, company, city, message, metadata, client_ip)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8::jsonb,$9)
		RETURNING ` + leadColumns

	out, err := scanLead(r.db.QueryRow(ctx, q, r.args(l)...))
	if err != nil {
		return nil, fmt.Errorf("insert %s lead: %w", l.Kind, err)
	}
	return out, nil
}

func (r *leadRepo) Subscribe(ctx context.Context, l *models.Lead) (*models.Lead, error) {
	q := `
		INSERT INTO leads (kind, name, email, phone, company, city, message, metadata, client_ip)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8::jsonb,$9)
		ON CONFLICT (lower(email)) WHERE kind = 'newsletter' DO NOTHING
		RETURNING ` + leadColumns

	l.Kind = models.LeadNewsletter
	rows, err := r.db.Query(ctx, q, r.args(l)...)
	if err != nil {
		return nil, fmt.Errorf("subscribe: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("subscribe: %w", err)
		}
		return nil, ErrAlreadySubscribed
	}
	out, err := scanLead(rows)
	if err != nil {
		return nil, fmt.Errorf("subscribe scan: %w", err)
	}
	return out, nil
}

func (r *leadRepo) args(l *models.Lead) []interface{} {
	meta := l.Metadata
	if meta == nil {
		meta = map[string]string{}
	}
	metaJSON, _ := json.Marshal(meta)
	return []interface{}{
		string(l.Kind), l.Name, l.Email, l.Phone, l.Company, l.City, l.Message, metaJSON, l.ClientIP,
	}
}

func (r *leadRepo) List(ctx context.Context, kind models.LeadKind, limit, offset int) ([]*models.Lead, int, error) {
	cond := ""
	args := []interface{}{}
	if kind != "" {
		cond = " WHERE kind = $1"
		args = append(args, string(kind))
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM leads`+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count leads: %w", err)
	}

	q := `SELECT ` + leadColumns + ` FROM leads` + cond +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	list := []*models.Lead{}
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan lead: %w", err)
		}
		list = append(list, l)
	}
	return list, total, rows.Err()
}

