package identity

import "strings"

// suffix tokens dropped for name comparison only. "riverside academy" and
// "riverside school" should collide; stored names are never rewritten.
var suffixTokens = map[string]bool{
	"school":    true,
	"schools":   true,
	"academy":   true,
	"academies": true,
	"the":       true,
}

func CleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// NormalizeName case-folds, strips punctuation and legal/suffix tokens, and
// collapses whitespace. Used for similarity scoring, not for display.
func NormalizeName(name string) string {
	name = strings.ToLower(CleanText(name))

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}

	var out []string
	for _, tok := range strings.Fields(b.String()) {
		if suffixTokens[tok] {
			continue
		}
		out = append(out, tok)
	}
	if len(out) == 0 {
		// all tokens were suffixes; fall back so "The School" still compares
		return strings.Join(strings.Fields(b.String()), " ")
	}
	return strings.Join(out, " ")
}

// NormalizeCity lower-cases and drops state/zip noise after the first comma,
// so "Downey, CA" and "downey" agree.
func NormalizeCity(city string) string {
	city = strings.ToLower(CleanText(city))
	if i := strings.IndexByte(city, ','); i >= 0 {
		city = city[:i]
	}
	return strings.TrimSpace(city)
}
