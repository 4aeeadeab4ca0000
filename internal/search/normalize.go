package search

import "strings"

// NormalizeQuery lowercases query, replaces every character other than
// [a-z0-9] and whitespace with a space, collapses whitespace and trims.
func NormalizeQuery(query string) string {
	var b strings.Builder
	b.Grow(len(query))
	for _, r := range strings.ToLower(query) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			// whitespace and punctuation alike become a separator
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
