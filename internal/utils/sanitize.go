package utils

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

// maxPasses bounds the fixed-point loop; real input settles in two.
const maxPasses = 8

type Sanitizer struct {
	text *bluemonday.Policy
	html *bluemonday.Policy
}

func NewSanitizer() *Sanitizer {
	p := bluemonday.UGCPolicy()
	p.AllowElements("img")
	p.AllowAttrs("src", "alt").OnElements("img")
	return &Sanitizer{text: bluemonday.StrictPolicy(), html: p}
}

// Text strips all markup and returns decoded plain text.
func (s *Sanitizer) Text(in string) string {
	return untilStable(in, func(v string) string {
		return strings.TrimSpace(html.UnescapeString(s.text.Sanitize(v)))
	})
}

// HTML keeps a safe formatting subset and drops scripts, styles and event handlers.
func (s *Sanitizer) HTML(in string) string {
	return untilStable(in, func(v string) string {
		return strings.TrimSpace(s.html.Sanitize(v))
	})
}

// TextPtr sanitizes the pointed-to value, keeping nil as nil.
func (s *Sanitizer) TextPtr(in *string) *string {
	if in == nil {
		return nil
	}
	out := s.Text(*in)
	return &out
}

func (s *Sanitizer) HTMLPtr(in *string) *string {
	if in == nil {
		return nil
	}
	out := s.HTML(*in)
	return &out
}

func untilStable(in string, pass func(string) string) string {
	cur := pass(in)
	for i := 1; i < maxPasses; i++ {
		next := pass(cur)
		if next == cur {
			break
		}
		cur = next
	}
	return cur
}

// Excerpt returns up to max runes of plain text from content, cut at a
// word boundary and suffixed with an ellipsis when shortened.
func Excerpt(content string, max int) string {
	text := strings.Join(strings.Fields(html.UnescapeString(wordPolicy.Sanitize(content))), " ")
	if max <= 0 || utf8.RuneCountInString(text) <= max {
		return text
	}
	runes := []rune(text)[:max]
	cut := string(runes)
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}
