package api

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// capitalize upper-cases the first letter of an identifier for operation IDs.
// Casers are stateful, so each call builds its own.
func capitalize(s string) string {
	return cases.Title(language.English).String(s)
}
