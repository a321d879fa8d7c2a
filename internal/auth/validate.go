package auth

import "regexp"

// MinPasswordLen is the registration password floor.
const MinPasswordLen = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s looks like an email address. Matching is
// syntactic only; no deliverability checks.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidPassword reports whether p satisfies the registration length rule.
func ValidPassword(p string) bool {
	return len(p) >= MinPasswordLen
}
