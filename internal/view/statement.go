// Package view compiles the read side of Reelhouse: match predicates, sort,
// pagination and join stages become SQL statements that the store executes.
// Nothing in this package touches the database.
package view

import "strings"

// Statement is a compiled SQL statement and its positional arguments.
type Statement struct {
	SQL  string
	Args []any
}

// Compiled pairs a page statement with the COUNT statement of the same predicate.
type Compiled struct {
	Count Statement
	Page  Statement
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func stringArgs(ids []string) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

// paged appends LIMIT/OFFSET to a statement without aliasing its argument slice.
func paged(sql string, args []any, p Page) Statement {
	out := make([]any, 0, len(args)+2)
	out = append(out, args...)
	out = append(out, p.Limit, p.Offset())
	return Statement{SQL: sql + " LIMIT ? OFFSET ?", Args: out}
}
