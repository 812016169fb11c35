package sqlite

import (
	"context"
	"fmt"

	"github.com/reelhouse/reelhouse-server/internal/store"
)

// AddToWatchHistory appends a video to a user's history. Re-adding is a no-op.
// Returns store.ErrNotFound if the user or video does not exist.
func (s *Store) AddToWatchHistory(ctx context.Context, userID, videoID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO watch_history (user_id, video_id, added_at) VALUES (?, ?, ?)
		ON CONFLICT (user_id, video_id) DO NOTHING`,
		userID, videoID, formatTime(nowUTC()),
	)
	if isForeignKeyViolation(err) {
		return store.ErrNotFound.WithMessage(fmt.Sprintf("user %s or video %s not found", userID, videoID))
	}
	if err != nil {
		return fmt.Errorf("add to watch history: %w", err)
	}
	return nil
}

// RemoveFromWatchHistory removes one entry.
func (s *Store) RemoveFromWatchHistory(ctx context.Context, userID, videoID string) error {
	return s.execOne(ctx, "remove history entry "+videoID,
		`DELETE FROM watch_history WHERE user_id = ? AND video_id = ?`, userID, videoID)
}

// ClearWatchHistory empties a user's history and reports how many entries went.
func (s *Store) ClearWatchHistory(ctx context.Context, userID string) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM watch_history WHERE user_id = ?`, userID)
	if err != nil {
		return 0, fmt.Errorf("clear watch history: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear watch history: rows affected: %w", err)
	}
	return int(n), nil
}
