package middleware

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Input validation and sanitization utilities

var reportIDPattern = regexp.MustCompile(`^[0-9]{10,16}-[a-f0-9]{8}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{12}$`)

// ValidateReportID checks the "<unix-millis>-<uuid>" format.
func ValidateReportID(id string) error {
	if id == "" {
		return fmt.Errorf("report ID cannot be empty")
	}
	if !reportIDPattern.MatchString(id) {
		return fmt.Errorf("invalid report ID format")
	}
	return nil
}

// SanitizeString removes null bytes and control characters, keeping tabs and newlines.
func SanitizeString(input string) string {
	input = strings.ReplaceAll(input, "\x00", "")

	var result strings.Builder
	for _, r := range input {
		if r == '\t' || r == '\n' || !unicode.IsControl(r) {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}

// LimitLength cuts s to at most n runes.
func LimitLength(s string, n int) string {
	if n <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
