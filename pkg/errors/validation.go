package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// MaxIDLength bounds element ids. Ids end up in DOM ids and attribute values.
const MaxIDLength = 256

// ValidateElementID validates an element id for use as a graph node and as
// part of overlay DOM ids.
//
// The validation rules are intentionally conservative:
//   - No empty ids
//   - No control characters
//   - Maximum length of 256 characters
func ValidateElementID(id string) error {
	if strings.TrimSpace(id) == "" {
		return New(ErrCodeInvalidDocument, "element id cannot be empty")
	}

	if len(id) > MaxIDLength {
		return New(ErrCodeInvalidDocument, "element id too long (max %d characters)", MaxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDocument, "element id %q contains invalid control characters", id)
		}
	}

	return nil
}

// SourceExtensions lists the diagram source extensions that can be decoded.
var SourceExtensions = []string{".yaml", ".yml", ".json"}

// ValidateSourcePath validates a diagram source path given on the command line.
// The path must name a file with one of the SourceExtensions.
func ValidateSourcePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "source path cannot be empty")
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range SourceExtensions {
		if ext == allowed {
			return nil
		}
	}
	return New(ErrCodeUnsupportedFormat, "unsupported source extension %q (want one of %s)",
		ext, strings.Join(SourceExtensions, ", "))
}

// ValidateLinkURL validates a URL attached to a list item.
// Absolute http(s) URLs, mailto links and site-relative references are
// accepted; script-bearing schemes are rejected.
func ValidateLinkURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	lower := strings.ToLower(strings.TrimSpace(rawURL))
	switch {
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"),
		strings.HasPrefix(lower, "mailto:"):
		return nil
	case strings.HasPrefix(lower, "/"), strings.HasPrefix(lower, "#"), strings.HasPrefix(lower, "./"):
		return nil
	}

	if i := strings.IndexByte(lower, ':'); i >= 0 && !strings.ContainsAny(lower[:i], "/?#") {
		return New(ErrCodeInvalidInput, "URL scheme %q is not allowed", lower[:i])
	}
	return nil
}
