package view

import (
	"strconv"
	"strings"
)

// Limits bounds page sizes.
type Limits struct {
	Default int
	Max     int
}

// DefaultLimits applies when no configuration is supplied.
var DefaultLimits = Limits{Default: 6, Max: 50}

// Page is a resolved 1-based page request.
type Page struct {
	Number int
	Limit  int
}

// Offset is the number of rows skipped before this page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

// ParsePage resolves raw page and limit input. Missing, non-numeric and
// non-positive values fall back to page 1 and the default limit; the limit
// is capped at the maximum. It never fails.
func ParsePage(page, limit string, l Limits) Page {
	if l.Default <= 0 {
		l.Default = DefaultLimits.Default
	}
	if l.Max < l.Default {
		l.Max = l.Default
	}

	p := Page{Number: 1, Limit: l.Default}
	if n, err := strconv.Atoi(strings.TrimSpace(page)); err == nil && n > 0 {
		p.Number = n
	}
	if n, err := strconv.Atoi(strings.TrimSpace(limit)); err == nil && n > 0 {
		p.Limit = min(n, l.Max)
	}
	return p
}
