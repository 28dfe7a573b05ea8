package media

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Slug turns a title into a filesystem-safe lowercase dashed name.
// Unicode is NFC-normalized first so visually identical titles produce
// identical filenames across platforms.
func Slug(s string) string {
	s = norm.NFC.String(s)

	var b strings.Builder

	lastDash := true // suppress a leading dash

	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)

			lastDash = false
		case !lastDash:
			b.WriteByte('-')

			lastDash = true
		}
	}

	return strings.TrimRight(b.String(), "-")
}
