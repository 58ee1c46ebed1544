package utils

import "strings"

// Password requirements. bcrypt ignores anything past 72 bytes.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

// HasSpecialChar reports whether s contains at least one punctuation
// character. Dashboard passwords must.
func HasSpecialChar(s string) bool {
	specialChars := "!@#$%^&*()_+-=[]{}|;:,.<>?`~"
	for _, char := range s {
		if strings.ContainsRune(specialChars, char) {
			return true
		}
	}
	return false
}

// ValidPassword applies the length and special character rules.
func ValidPassword(s string) bool {
	return len(s) >= MinPasswordLength && len(s) <= MaxPasswordLength && HasSpecialChar(s)
}
