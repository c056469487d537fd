package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL-safe slug from a display name plus a short unique
// suffix (e.g. the tail of the owning user's ID). Diacritics are stripped;
// names with no Latin characters (e.g. Hebrew-only) fall back to "ot".
// Slugs are assigned once at profile creation and never change.
func Slugify(name, suffix string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, name)
	if err != nil {
		stripped = name
	}

	base := strings.ToLower(strings.TrimSpace(stripped))
	base = nonSlugChars.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-")
	if base == "" {
		base = "ot"
	}

	if suffix == "" {
		return base
	}
	return base + "-" + strings.ToLower(suffix)
}
