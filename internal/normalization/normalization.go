package normalization

import "strings"

// ParseInputString trims surrounding whitespace from user input.
// Empty and whitespace-only values collapse to "".
func ParseInputString(s string) string {
	return strings.TrimSpace(s)
}

// ParseLowerInputString trims and lowercases enum-like input
// (soil types, seasons, categories).
func ParseLowerInputString(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizePhone keeps digits and a leading plus only.
func NormalizePhone(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	for i, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			continue
		}
		if r == '+' && i == 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
