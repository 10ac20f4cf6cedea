package util

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// GenerateSlug converts a recipe title into a URL-friendly slug.
// Accented characters are decomposed and reduced to their ASCII base,
// apostrophes disappear rather than becoming separators, and any run of
// remaining non-alphanumeric characters collapses into a single hyphen.
func GenerateSlug(title string) string {
	decomposed := norm.NFKD.String(title)

	var b strings.Builder
	b.Grow(len(decomposed))
	lastHyphen := true // suppress leading hyphens
	for _, r := range decomposed {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case r >= 'A' && r <= 'Z':
			b.WriteRune(unicode.ToLower(r))
			lastHyphen = false
		case r == '\'' || r == '’' || r == '`':
			// apostrophes vanish entirely: "Grandma's" -> "grandmas"
		case r > unicode.MaxASCII:
			// combining marks and any other non-ASCII are dropped
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.Trim(b.String(), "-")
}

// MakeUniqueSlug returns base unchanged if it is not in existing, otherwise
// the first "base-N" (N starting at 2) absent from existing.
func MakeUniqueSlug(base string, existing map[string]struct{}) string {
	if _, taken := existing[base]; !taken {
		return base
	}

	for counter := 2; ; counter++ {
		candidate := fmt.Sprintf("%s-%d", base, counter)
		if _, taken := existing[candidate]; !taken {
			return candidate
		}
	}
}
