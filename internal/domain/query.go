package domain

// SortField names a whitelisted sort column for content listings.
type SortField string

const (
	SortCreatedAt SortField = "created_at"
	SortViews     SortField = "views"
	SortDuration  SortField = "duration"
	SortTitle     SortField = "title"
)

// ParseSortField maps caller input to a known field. Unknown or empty input
// yields SortCreatedAt.
func ParseSortField(s string) SortField {
	switch SortField(s) {
	case SortViews, SortDuration, SortTitle, SortCreatedAt:
		return SortField(s)
	case "createdAt":
		return SortCreatedAt
	default:
		return SortCreatedAt
	}
}

// SortDirection is +1 (ascending) or -1 (descending).
type SortDirection int

const (
	Ascending  SortDirection = 1
	Descending SortDirection = -1
)

// ParseSortDirection accepts "1", "asc", "-1" and "desc". Anything else is
// Descending, the default for every listing.
func ParseSortDirection(s string) SortDirection {
	switch s {
	case "1", "+1", "asc", "ASC", "ascending":
		return Ascending
	default:
		return Descending
	}
}

// Sort is a resolved sort specification.
type Sort struct {
	Field     SortField
	Direction SortDirection
}

// DefaultSort is most recent first.
var DefaultSort = Sort{Field: SortCreatedAt, Direction: Descending}

// FeedQuery carries raw listing parameters from a caller. Page, Limit and the
// sort fields are strings so malformed input can be recovered to defaults.
type FeedQuery struct {
	Query         string
	OwnerID       string
	OwnerUsername string
	SortBy        string
	SortType      string
	Page          string
	Limit         string
}

// Sort resolves the query's sort parameters.
func (q FeedQuery) Sort() Sort {
	return Sort{Field: ParseSortField(q.SortBy), Direction: ParseSortDirection(q.SortType)}
}
