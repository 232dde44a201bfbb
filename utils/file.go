package utils

import "strings"

// SanitizeFilename replaces characters outside [a-zA-Z0-9-_.] with underscores
// so object names stay safe for storage keys and URLs.
func SanitizeFilename(filename string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.' {
			return r
		}
		return '_'
	}, filename)
}

// TruncateString shortens long strings to maxLength with an ellipsis suffix.
func TruncateString(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}
	return s[:maxLength] + "..."
}
