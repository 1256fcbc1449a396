package middleware

import (
	"fmt"
	"regexp"
	"strings"
)

// Input validation and sanitization utilities

// MaxUploadBytes caps the request body for image uploads (10 MB raw,
// the normalizer shrinks it afterwards).
const MaxUploadBytes = 10 << 20

// ValidateImageContentType checks the declared content type of an upload.
// The decoder sniffs the real format later, this only rejects obvious junk early.
func ValidateImageContentType(contentType string) error {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if idx := strings.Index(ct, ";"); idx >= 0 {
		ct = strings.TrimSpace(ct[:idx])
	}

	allowed := map[string]bool{
		"image/jpeg":               true,
		"image/png":                true,
		"image/gif":                true,
		"image/webp":               true,
		"application/octet-stream": true,
		"": true,
	}

	if !allowed[ct] {
		return fmt.Errorf("unsupported content type: %s (allowed: image/jpeg, image/png, image/gif, image/webp)", ct)
	}
	return nil
}

// ValidateRockID validates saved rock ID format
func ValidateRockID(id string) error {
	if id == "" {
		return fmt.Errorf("rock ID cannot be empty")
	}

	// UUID pattern; legacy entries use numeric timestamp IDs
	pattern := `^([a-f0-9]{8}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{12}|[0-9]{1,19})$`
	matched, _ := regexp.MatchString(pattern, id)
	if !matched {
		return fmt.Errorf("invalid rock ID format")
	}

	return nil
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	// Remove control characters
	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}

// ValidateThumbSize validates the thumbnail size parameter
func ValidateThumbSize(size int) int {
	if size <= 0 {
		return 300 // default
	}
	if size > 1024 {
		return 1024 // max size
	}
	return size
}

// ValidateLimit validates pagination limit
func ValidateLimit(limit int) int {
	if limit <= 0 {
		return 20 // default
	}
	if limit > 100 {
		return 100 // max limit
	}
	return limit
}
