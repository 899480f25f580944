package validate

import (
	"regexp"
	"strings"
)

var (
	reSlug = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	reID   = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
)

// Slug validates a catalog slug (products, categories).
func Slug(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 96 {
		return "", false
	}
	return s, reSlug.MatchString(s)
}

// ID validates a simple resource identifier.
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Quantity clamps a checkout quantity into [1, 99]; anything unusable
// becomes 1.
func Quantity(n int) int {
	if n < 1 {
		return 1
	}
	if n > 99 {
		return 99
	}
	return n
}

// SizeLabel trims and bounds a free-text size label.
func SizeLabel(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 32 {
		return "", false
	}
	return s, true
}
