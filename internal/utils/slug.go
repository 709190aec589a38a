package utils

import (
	"regexp"
	"strings"

	"github.com/gosimple/slug"
)

var hyphenRuns = regexp.MustCompile(`-{2,}`)

// Slugify turns a title into a lowercase, hyphen-delimited URL segment.
// The result matches [a-z0-9]+(-[a-z0-9]+)* or is empty when the title has
// no letters or digits. Slugify(Slugify(x)) == Slugify(x).
func Slugify(title string) string {
	s := slug.Make(title)
	s = strings.ReplaceAll(s, "_", "-")
	s = hyphenRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
