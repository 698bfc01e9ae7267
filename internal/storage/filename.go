package storage

import (
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	invalidChars = regexp.MustCompile(`[^a-z0-9_.-]`)
	underscores  = regexp.MustCompile(`_{2,}`)
)

// SanitizeFileName makes name safe for object storage: lower case,
// accents folded, anything outside [a-z0-9_.-] replaced by "_", with a
// millisecond timestamp appended before the extension.
func SanitizeFileName(name string, now time.Time) (string, error) {
	ext := strings.TrimPrefix(path.Ext(name), ".")
	if ext == "" {
		return "", fmt.Errorf("could not determine the file extension of %q", name)
	}
	base := strings.TrimSuffix(name, "."+ext)
	if base == "" {
		base = name
	}

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.ToLower(base))
	if err != nil {
		return "", fmt.Errorf("failed to normalize file name: %w", err)
	}
	folded = invalidChars.ReplaceAllString(folded, "_")
	folded = strings.Trim(underscores.ReplaceAllString(folded, "_"), "_")

	return fmt.Sprintf("%s_%d.%s", folded, now.UnixMilli(), strings.ToLower(ext)), nil
}
