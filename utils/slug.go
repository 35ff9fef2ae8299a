package utils

import (
	"strings"
	"unicode"

	"github.com/gosimple/slug"
)

// Slugify lower-cases s, transliterates it to ASCII and joins its words with dashes.
func Slugify(s string) string {
	return slug.Make(s)
}

// Capitalize upper-cases the first letter and lower-cases the rest.
func Capitalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
