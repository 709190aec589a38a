package utils

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

const WordsPerMinute = 200

var wordPolicy = func() *bluemonday.Policy {
	p := bluemonday.StrictPolicy()
	p.AddSpaceWhenStrippingTag(true)
	return p
}()

// WordCount counts whitespace separated words after markup is stripped.
func WordCount(content string) int {
	text := html.UnescapeString(wordPolicy.Sanitize(content))
	return len(strings.Fields(text))
}

// ReadTime estimates reading minutes, rounded up, never below 1.
func ReadTime(content string) int {
	words := WordCount(content)
	minutes := (words + WordsPerMinute - 1) / WordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}
