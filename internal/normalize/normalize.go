// Package normalize canonicalizes user-supplied identifiers before they reach the store.
package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Username returns the canonical form of a channel username.
// Usernames are stored lowercase; lookups go through the same folding so
// "Alice", " alice " and "ALICE" resolve to the same channel.
func Username(s string) string {
	s = strings.TrimSpace(s)
	s = norm.NFKC.String(s)
	return cases.Fold().String(s)
}

// Query collapses whitespace in a free-text search query.
// Returns "" when nothing searchable remains.
func Query(s string) string {
	return strings.Join(strings.Fields(norm.NFKC.String(s)), " ")
}
