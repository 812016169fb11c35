package view

import (
	"encoding/json"
	"strings"

	"github.com/reelhouse/reelhouse-server/internal/domain"
)

// ContentFilter is the match predicate over videos (aliased v). Every set
// field adds one independent AND clause.
type ContentFilter struct {
	// PublishedOnly restricts to is_published = 1. When VisibleTo is also set,
	// that user's own unpublished videos match too.
	PublishedOnly bool
	VisibleTo     string

	OwnerID       string
	OwnerUsername string // compared against the normalized username

	// IDs restricts to a fixed ID set, normally the result of a text search.
	// nil means unrestricted; a non-nil empty slice matches nothing. The set
	// is bound as one JSON array argument, so its size is not limited by the
	// driver's bound-parameter cap.
	IDs []string

	// SubscribedBy keeps videos owned by the user or by channels they subscribe to.
	SubscribedBy string

	// ExcludeWatchedBy drops videos in the user's watch history.
	ExcludeWatchedBy string
}

// Where compiles the predicate. The fragment is used verbatim by both the
// COUNT and the page statement of a query.
func (f ContentFilter) Where() Statement {
	var (
		clauses []string
		args    []any
	)

	if f.PublishedOnly {
		if f.VisibleTo != "" {
			clauses = append(clauses, "(v.is_published = 1 OR v.owner_id = ?)")
			args = append(args, f.VisibleTo)
		} else {
			clauses = append(clauses, "v.is_published = 1")
		}
	}

	if f.IDs != nil {
		if len(f.IDs) == 0 {
			clauses = append(clauses, "0")
		} else {
			clauses = append(clauses, "v.id IN (SELECT value FROM json_each(?))")
			args = append(args, jsonArray(f.IDs))
		}
	}

	if f.OwnerID != "" {
		clauses = append(clauses, "v.owner_id = ?")
		args = append(args, f.OwnerID)
	}

	if f.OwnerUsername != "" {
		clauses = append(clauses, "v.owner_id IN (SELECT id FROM users WHERE username = ?)")
		args = append(args, f.OwnerUsername)
	}

	if f.SubscribedBy != "" {
		clauses = append(clauses, `(v.owner_id = ? OR EXISTS (
			SELECT 1 FROM subscriptions s
			WHERE s.subscriber_id = ? AND s.channel_id = v.owner_id))`)
		args = append(args, f.SubscribedBy, f.SubscribedBy)
	}

	if f.ExcludeWatchedBy != "" {
		clauses = append(clauses, "v.id NOT IN (SELECT video_id FROM watch_history WHERE user_id = ?)")
		args = append(args, f.ExcludeWatchedBy)
	}

	if len(clauses) == 0 {
		return Statement{SQL: "1"}
	}
	return Statement{SQL: strings.Join(clauses, " AND "), Args: args}
}

func jsonArray(ids []string) string {
	//nolint:errcheck // a []string always marshals
	b, _ := json.Marshal(ids)
	return string(b)
}

// OrderBy compiles a whitelisted sort with an id tiebreaker in the same
// direction, so the order is total.
func OrderBy(s domain.Sort) string {
	var col string
	switch s.Field {
	case domain.SortViews:
		col = "v.views"
	case domain.SortDuration:
		col = "v.duration"
	case domain.SortTitle:
		col = "v.title COLLATE NOCASE"
	default:
		col = "v.created_at"
	}

	dir := "DESC"
	if s.Direction == domain.Ascending {
		dir = "ASC"
	}
	return col + " " + dir + ", v.id " + dir
}
