package view

import "github.com/reelhouse/reelhouse-server/internal/domain"

// OwnerJoin compiles the single-valued content → owner join for a batch of
// owner IDs. Each ID resolves to at most one row; missing rows collapse to nil.
func OwnerJoin(ownerIDs []string) Statement {
	return Statement{
		SQL:  "SELECT " + OwnerColumns + " FROM users u WHERE u.id IN (" + placeholders(len(ownerIDs)) + ")",
		Args: stringArgs(ownerIDs),
	}
}

// LikeCountJoin compiles a count-only join: likes per target. Edge rows never
// leave the store.
func LikeCountJoin(kind domain.TargetKind, ids []string) Statement {
	return countJoin("likes", kind, ids)
}

// CommentCountJoin compiles comments per target.
func CommentCountJoin(kind domain.TargetKind, ids []string) Statement {
	return countJoin("comments", kind, ids)
}

func countJoin(table string, kind domain.TargetKind, ids []string) Statement {
	args := make([]any, 0, len(ids)+1)
	args = append(args, string(kind))
	args = append(args, stringArgs(ids)...)
	return Statement{
		SQL: "SELECT target_id, COUNT(*) FROM " + table +
			" WHERE target_kind = ? AND target_id IN (" + placeholders(len(ids)) + ") GROUP BY target_id",
		Args: args,
	}
}

// CommentColumns is the comment select list with its nested owner projection.
// Owner columns come from a LEFT JOIN and are NULL when the owner is gone.
const CommentColumns = `c.id, c.owner_id, c.target_kind, c.target_id, c.content, c.created_at, c.updated_at,
	u.id, u.username, u.full_name, u.avatar`

// CommentsJoin compiles the multi-valued content → comments → owner join for
// one target, newest first.
func CommentsJoin(target domain.TargetRef, p Page) Compiled {
	const where = ` WHERE c.target_kind = ? AND c.target_id = ?`
	args := []any{string(target.Kind), target.ID}
	return Compiled{
		Count: Statement{SQL: "SELECT COUNT(*) FROM comments c" + where, Args: args},
		Page: paged("SELECT "+CommentColumns+" FROM comments c LEFT JOIN users u ON u.id = c.owner_id"+
			where+" ORDER BY c.created_at DESC, c.id DESC", args, p),
	}
}
