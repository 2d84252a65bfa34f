// Package blobname maps arbitrary user-supplied path strings to canonical, backend-safe blob names
// and resolves name collisions against a backing store.
//
// A canonical name is forward-slash separated, contains no redundant separators and no "." or ".."
// segments, is restricted to Unicode word characters plus "-", "_", "." and "/", is trimmed of
// leading/trailing separators and dots, is non-empty, and is bounded in length. Normalization is
// idempotent: normalizing a canonical name yields the same canonical name.
package blobname

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMaxLength is the maximum canonical name length used when no limit is configured.
// It matches the Azure Blob Storage blob name limit of 1024 characters.
const DefaultMaxLength = 1024

// InvalidNameError is returned when a raw name cannot be made canonical: it normalizes to an
// empty string, or it exceeds the maximum length even after truncation.
type InvalidNameError struct {
	// Name is the offending raw name.
	Name string

	// Reason describes why the name is invalid.
	Reason string
}

// Error returns a string representation of the error
func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid blob name %q: %s", e.Name, e.Reason)
}

const (
	reasonEmpty   = "a name of one or more printable characters is required"
	reasonTooLong = "name exceeds maximum length"
)

// Normalize maps raw to its canonical form, bounded by DefaultMaxLength.
// It fails with *InvalidNameError when the result would be empty or too long.
func Normalize(raw string) (string, error) {
	return NormalizeWithLimit(raw, DefaultMaxLength)
}

// NormalizeWithLimit is Normalize with an explicit maximum length (in characters, not bytes).
// A maxLength <= 0 means DefaultMaxLength.
//
// The canonical form is computed as follows:
//  1. backslash separators become forward slashes and spaces become underscores
//  2. every character outside the allowed set (Unicode letters and digits, "_", "-", ".", "/")
//     is stripped
//  3. path segments are collapsed: empty and "." segments are dropped, ".." pops the previously
//     kept segment (or is dropped at the root, so a name can never traverse above it)
//  4. leading and trailing spaces, dots, and slashes are trimmed
func NormalizeWithLimit(raw string, maxLength int) (string, error) {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}

	name := strings.ReplaceAll(raw, `\`, "/")
	name = strings.ReplaceAll(name, " ", "_")
	name = stripDisallowed(name)
	name = collapseSegments(name)
	name = strings.Trim(name, " ./")

	if name == "" {
		return "", &InvalidNameError{Name: raw, Reason: reasonEmpty}
	}
	if utf8.RuneCountInString(name) > maxLength {
		return "", &InvalidNameError{Name: raw, Reason: reasonTooLong}
	}
	return name, nil
}

// stripDisallowed removes every rune outside the allowed set. The check runs on decoded runes so
// multi-byte characters are preserved, never mangled byte-wise.
func stripDisallowed(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isAllowed(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isAllowed(r rune) bool {
	switch {
	case r == '-' || r == '_' || r == '.' || r == '/':
		return true
	case r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return true
	default:
		// the non-ASCII remainder of the Unicode word class
		return r > 127 && isWordRune(r)
	}
}

// isWordRune reports whether r belongs to the Unicode word class: letters, digits, and
// combining marks (so decomposed accented characters survive intact).
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

// collapseSegments resolves "." and ".." segments and redundant separators without consulting
// host-OS path semantics, so the result is forward-slash form on every platform.
func collapseSegments(s string) string {
	segments := strings.Split(s, "/")
	kept := make([]string, 0, len(segments))
	for _, segment := range segments {
		switch segment {
		case "", ".":
			// redundant separator or current-dir reference
		case "..":
			if len(kept) > 0 {
				kept = kept[:len(kept)-1]
			}
		default:
			kept = append(kept, segment)
		}
	}
	return strings.Join(kept, "/")
}
