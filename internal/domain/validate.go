package domain

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail checks an address against the same loose pattern the site's forms use
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// NormalizeEmail trims and lower-cases an address before it is stored or looked up
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func validRating(r int) bool {
	return r >= 1 && r <= 5
}
