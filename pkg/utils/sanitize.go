package utils

import (
	"fmt"
	"html"
	"regexp"
	"strings"
	"unicode"
)

var (
	htmlTagPattern     = regexp.MustCompile(`<[^>]*>`)
	nonAlphanumPattern = regexp.MustCompile(`[^A-Za-z0-9]+`)
)

// SanitizeString trims input and escapes HTML
func SanitizeString(input string) string {
	return html.EscapeString(strings.TrimSpace(input))
}

// SanitizeEmail sanitizes email input
func SanitizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	email = stripHTML(email)
	return removeControlChars(email)
}

// SanitizePhone keeps digits and common phone punctuation
func SanitizePhone(phone string) string {
	phone = stripHTML(strings.TrimSpace(phone))

	var result strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) || r == '+' || r == '-' || r == ' ' || r == '(' || r == ')' {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// SanitizeText sanitizes multi-line text input
func SanitizeText(input string) string {
	escaped := html.EscapeString(strings.TrimSpace(input))

	var result strings.Builder
	for _, r := range escaped {
		if unicode.IsPrint(r) || r == '\n' || r == '\t' || r == '\r' {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// SanitizeFilenamePart strips every non-alphanumeric character.
func SanitizeFilenamePart(input string) string {
	return nonAlphanumPattern.ReplaceAllString(input, "")
}

func stripHTML(input string) string {
	return htmlTagPattern.ReplaceAllString(input, "")
}

func removeControlChars(input string) string {
	var result strings.Builder
	for _, r := range input {
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// ValidateAndSanitizeEmail validates and sanitizes email
func ValidateAndSanitizeEmail(email string) (string, error) {
	sanitized := SanitizeEmail(email)
	if !IsValidEmail(sanitized) {
		return "", fmt.Errorf("invalid email format")
	}
	return sanitized, nil
}
