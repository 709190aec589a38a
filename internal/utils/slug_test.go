package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var slugShape = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"simple title", "How Bicycles Win", "how-bicycles-win"},
		{"punctuation", "Ride, Advertise & Earn!", "ride-advertise-and-earn"},
		{"surrounding space", "  Urban   Reach  ", "urban-reach"},
		{"underscores", "snake_case__title", "snake-case-title"},
		{"repeated hyphens", "A -- B", "a-b"},
		{"accents", "Café Routes in Zürich", "cafe-routes-in-zurich"},
		{"digits", "Top 10 Routes 2025", "top-10-routes-2025"},
		{"no letters", "!!! ???", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Slugify(tt.title)
			assert.Equal(t, tt.want, got)
			if got != "" {
				assert.Regexp(t, slugShape, got)
			}
		})
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	inputs := []string{
		"How Bicycles Win",
		"--Leading and trailing--",
		"Mixed_Case AND __underscores__",
		"émojis 🚲 and symbols @ play",
		"",
	}
	for _, in := range inputs {
		once := Slugify(in)
		assert.Equal(t, once, Slugify(once), "input %q", in)
	}
}

func TestSlugifyCaseInsensitiveTitlesCollide(t *testing.T) {
	assert.Equal(t, Slugify("HOW BICYCLES WIN"), Slugify("how bicycles win"))
}
