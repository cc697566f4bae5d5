package utils

import "unicode"

// ValidPassword enforces the minimum-strength policy for new passwords:
// at least 8 characters with one lowercase letter, one uppercase letter
// and one digit.
func ValidPassword(p string) bool {
	if len(p) < 8 {
		return false
	}
	var lower, upper, digit bool
	for _, r := range p {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return lower && upper && digit
}
