package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/reelhouse/reelhouse-server/internal/domain"
	"github.com/reelhouse/reelhouse-server/internal/id"
	"github.com/reelhouse/reelhouse-server/internal/store"
)

// maxToggleAttempts bounds the optimistic toggle loop. An attempt only fails
// when a concurrent toggle of the same pair wins the race in between our
// delete and our insert.
const maxToggleAttempts = 8

// targetTables maps each target kind to the table its IDs live in.
var targetTables = map[domain.TargetKind]string{
	domain.TargetVideo:   "videos",
	domain.TargetPost:    "posts",
	domain.TargetComment: "comments",
	domain.TargetChannel: "users",
}

// edgeStatements holds the per-kind SQL for one edge table. pair args are
// (subject, target...) in the order the WHERE clauses expect.
type edgeStatements struct {
	delete string
	insert func(table string) string
	exists string
	pair   func(subjectID string, t domain.TargetRef) []any
}

var edgeSQL = map[domain.EdgeKind]edgeStatements{
	domain.EdgeLike: {
		delete: `DELETE FROM likes WHERE liked_by = ? AND target_kind = ? AND target_id = ?
			RETURNING id, created_at`,
		insert: func(table string) string {
			return `INSERT INTO likes (liked_by, target_kind, target_id, id, created_at)
				SELECT ?, ?, ?, ?, ?
				WHERE EXISTS (SELECT 1 FROM ` + table + ` WHERE id = ?)
				ON CONFLICT DO NOTHING`
		},
		exists: `SELECT EXISTS (SELECT 1 FROM likes WHERE liked_by = ? AND target_kind = ? AND target_id = ?)`,
		pair: func(subjectID string, t domain.TargetRef) []any {
			return []any{subjectID, string(t.Kind), t.ID}
		},
	},
	domain.EdgeSubscription: {
		delete: `DELETE FROM subscriptions WHERE subscriber_id = ? AND channel_id = ?
			RETURNING id, created_at`,
		insert: func(table string) string {
			return `INSERT INTO subscriptions (subscriber_id, channel_id, id, created_at)
				SELECT ?, ?, ?, ?
				WHERE EXISTS (SELECT 1 FROM ` + table + ` WHERE id = ?)
				ON CONFLICT DO NOTHING`
		},
		exists: `SELECT EXISTS (SELECT 1 FROM subscriptions WHERE subscriber_id = ? AND channel_id = ?)`,
		pair: func(subjectID string, t domain.TargetRef) []any {
			return []any{subjectID, t.ID}
		},
	},
}

func resolveEdge(kind domain.EdgeKind, target domain.TargetRef) (edgeStatements, string, error) {
	stmts, ok := edgeSQL[kind]
	if !ok || !kind.Accepts(target.Kind) {
		return edgeStatements{}, "", fmt.Errorf("%s edge cannot target %s", kind, target.Kind)
	}
	return stmts, targetTables[target.Kind], nil
}

// ToggleEdge flips the edge (kind, subjectID, target) atomically.
//
// There is no read-then-write: each attempt is a single DELETE of the pair,
// and if nothing was deleted a single conditional INSERT that only fires when
// the target row exists. The UNIQUE constraint arbitrates concurrent inserts.
// An insert that affects no row either lost a race (retry from the delete) or
// had no target (store.ErrNotFound). Exhausting the attempts returns
// store.ErrContended.
func (s *Store) ToggleEdge(ctx context.Context, kind domain.EdgeKind, subjectID string, target domain.TargetRef) (domain.EdgeState, error) {
	stmts, table, err := resolveEdge(kind, target)
	if err != nil {
		return domain.EdgeState{}, err
	}
	pair := stmts.pair(subjectID, target)

	for attempt := 1; attempt <= maxToggleAttempts; attempt++ {
		edge := &domain.Edge{Kind: kind, SubjectID: subjectID, Target: target}

		var createdAt string
		err := s.db.QueryRowContext(ctx, stmts.delete, pair...).Scan(&edge.ID, &createdAt)
		switch {
		case err == nil:
			if edge.CreatedAt, err = parseTime(createdAt); err != nil {
				return domain.EdgeState{}, err
			}
			return domain.EdgeState{Present: false, Edge: edge}, nil
		case !errors.Is(err, sql.ErrNoRows):
			return domain.EdgeState{}, fmt.Errorf("delete %s edge: %w", kind, err)
		}

		edgeID, err := id.Generate(edgePrefix(kind))
		if err != nil {
			return domain.EdgeState{}, fmt.Errorf("generate edge id: %w", err)
		}
		edge.ID = edgeID
		edge.CreatedAt = nowUTC()

		args := make([]any, 0, len(pair)+3)
		args = append(args, pair...)
		args = append(args, edge.ID, formatTime(edge.CreatedAt), target.ID)

		res, err := s.db.ExecContext(ctx, stmts.insert(table), args...)
		if isForeignKeyViolation(err) {
			return domain.EdgeState{}, store.ErrNotFound.WithMessage("user " + subjectID + " not found")
		}
		if err != nil {
			return domain.EdgeState{}, fmt.Errorf("insert %s edge: %w", kind, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return domain.EdgeState{}, fmt.Errorf("insert %s edge: rows affected: %w", kind, err)
		}
		if n == 1 {
			return domain.EdgeState{Present: true, Edge: edge}, nil
		}

		exists, err := s.TargetExists(ctx, target)
		if err != nil {
			return domain.EdgeState{}, err
		}
		if !exists {
			return domain.EdgeState{}, store.ErrNotFound.WithMessage(fmt.Sprintf("%s %s not found", target.Kind, target.ID))
		}

		s.logger.Debug("edge toggle lost race, retrying",
			"kind", kind, "subject_id", subjectID, "target", target.String(), "attempt", attempt)
	}

	return domain.EdgeState{}, store.ErrContended
}

// EdgeExists reports whether the edge is present. It never writes.
func (s *Store) EdgeExists(ctx context.Context, kind domain.EdgeKind, subjectID string, target domain.TargetRef) (bool, error) {
	stmts, _, err := resolveEdge(kind, target)
	if err != nil {
		return false, err
	}
	var exists bool
	if err := s.db.QueryRowContext(ctx, stmts.exists, stmts.pair(subjectID, target)...).Scan(&exists); err != nil {
		return false, fmt.Errorf("edge exists: %w", err)
	}
	return exists, nil
}

// TargetExists reports whether the row a reference points at exists.
func (s *Store) TargetExists(ctx context.Context, target domain.TargetRef) (bool, error) {
	table, ok := targetTables[target.Kind]
	if !ok {
		return false, fmt.Errorf("unknown target kind %q", target.Kind)
	}
	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM `+table+` WHERE id = ?)`, target.ID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("target exists: %w", err)
	}
	return exists, nil
}

func edgePrefix(kind domain.EdgeKind) string {
	if kind == domain.EdgeSubscription {
		return id.PrefixSubscription
	}
	return id.PrefixLike
}
