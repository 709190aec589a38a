package repository

import (
	"errors"
	"strings"
	"testing"
	"time"

	"pedalads/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestPostRowToModelNormalisesNulls(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	row := postRow{
		ID:      "7d1e4b7e-8a0c-4a47-9a52-6a1f9f0d2c11",
		Title:   "How Bicycles Win",
		Slug:    "how-bicycles-win",
		Author:  "A",
		Content: "<p>" + strings.Repeat("word ", 450) + "</p>",
	}

	p := row.toModel(now)

	assert.Equal(t, "", p.Excerpt)
	assert.Equal(t, "", p.Category)
	assert.Equal(t, "", p.ImageURL)
	assert.False(t, p.Featured)
	assert.Equal(t, 3, p.ReadTime)
	assert.Equal(t, now, p.CreatedAt)
	assert.Equal(t, now, p.UpdatedAt)
	assert.Equal(t, now, p.Date)
}

func TestPostRowToModelKeepsStoredValues(t *testing.T) {
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	updated := created.Add(time.Hour)
	rt := int32(7)
	featured := true
	cat := "Marketing"
	row := postRow{
		Title:     "t",
		Content:   "short",
		Category:  &cat,
		Featured:  &featured,
		ReadTime:  &rt,
		CreatedAt: &created,
		UpdatedAt: &updated,
	}

	p := row.toModel(time.Now())

	assert.Equal(t, 7, p.ReadTime)
	assert.True(t, p.Featured)
	assert.Equal(t, "Marketing", p.Category)
	assert.Equal(t, created, p.CreatedAt)
	assert.Equal(t, updated, p.UpdatedAt)
	assert.Equal(t, created, p.Date, "date falls back to creation time")
}

func TestPostRowToModelRecomputesBadReadTime(t *testing.T) {
	zero := int32(0)
	p := postRow{Content: "one two", ReadTime: &zero}.toModel(time.Now())
	assert.Equal(t, 1, p.ReadTime)
}

func TestPatchAssignments(t *testing.T) {
	title := "New"
	slug := "new"
	featured := false
	sets, args := patchAssignments(models.PostPatch{Title: &title, Slug: &slug, Featured: &featured})

	assert.Equal(t, []string{"title = $1", "slug = $2", "featured = $3"}, sets)
	assert.Equal(t, []interface{}{"New", "new", false}, args)

	sets, args = patchAssignments(models.PostPatch{})
	assert.Empty(t, sets)
	assert.Empty(t, args)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("boom")))
	assert.False(t, isUniqueViolation(nil))
}
