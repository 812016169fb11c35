package sqlite

import (
	"context"
	"fmt"

	"github.com/reelhouse/reelhouse-server/internal/domain"
	"github.com/reelhouse/reelhouse-server/internal/store"
	"github.com/reelhouse/reelhouse-server/internal/view"
)

const playlistColumns = `id, owner_id, name, description, created_at, updated_at`

func scanPlaylist(scanner interface{ Scan(dest ...any) error }) (*domain.Playlist, error) {
	var (
		p                    domain.Playlist
		createdAt, updatedAt string
	)
	if err := scanner.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Description, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	var err error
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePlaylist inserts a playlist. The owner must exist.
func (s *Store) CreatePlaylist(ctx context.Context, p *domain.Playlist) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO playlists (`+playlistColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.OwnerID, p.Name, p.Description, formatTime(p.CreatedAt), formatTime(p.UpdatedAt))
	if isForeignKeyViolation(err) {
		return store.ErrNotFound.WithMessage("user " + p.OwnerID + " not found")
	}
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists.WithCause(err)
	}
	if err != nil {
		return fmt.Errorf("insert playlist: %w", err)
	}
	return nil
}

// GetPlaylist retrieves a playlist by ID.
func (s *Store) GetPlaylist(ctx context.Context, id string) (*domain.Playlist, error) {
	p, err := scanPlaylist(s.db.QueryRowContext(ctx, `SELECT `+playlistColumns+` FROM playlists WHERE id = ?`, id))
	if err != nil {
		return nil, notFound(err, "playlist %s not found", id)
	}
	return p, nil
}

// ListPlaylists returns a user's playlists, newest first.
func (s *Store) ListPlaylists(ctx context.Context, ownerID string) ([]domain.Playlist, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+playlistColumns+` FROM playlists WHERE owner_id = ? ORDER BY created_at DESC, id DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}
	defer rows.Close()

	playlists := make([]domain.Playlist, 0)
	for rows.Next() {
		p, err := scanPlaylist(rows)
		if err != nil {
			return nil, err
		}
		playlists = append(playlists, *p)
	}
	return playlists, rows.Err()
}

// AddPlaylistVideo appends a video at the end of a playlist.
// Returns store.ErrAlreadyExists if the video is already in it and
// store.ErrNotFound if either side is missing.
func (s *Store) AddPlaylistVideo(ctx context.Context, playlistID, videoID string) (*domain.PlaylistEntry, error) {
	entry := &domain.PlaylistEntry{PlaylistID: playlistID, VideoID: videoID, AddedAt: nowUTC()}

	// Position is computed inside the insert so concurrent appends cannot share one.
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO playlist_videos (playlist_id, video_id, position, added_at)
		SELECT ?, ?, COALESCE(MAX(position), 0) + 1, ? FROM playlist_videos WHERE playlist_id = ?
		RETURNING position`,
		playlistID, videoID, formatTime(entry.AddedAt), playlistID,
	).Scan(&entry.Position)
	switch {
	case isUniqueViolation(err):
		return nil, store.ErrAlreadyExists.WithMessage("video already in playlist")
	case isForeignKeyViolation(err):
		return nil, store.ErrNotFound.WithMessage(fmt.Sprintf("playlist %s or video %s not found", playlistID, videoID))
	case err != nil:
		return nil, fmt.Errorf("add playlist video: %w", err)
	}
	return entry, nil
}

// RemovePlaylistVideo removes a video from a playlist.
func (s *Store) RemovePlaylistVideo(ctx context.Context, playlistID, videoID string) error {
	return s.execOne(ctx, "remove playlist video "+videoID,
		`DELETE FROM playlist_videos WHERE playlist_id = ? AND video_id = ?`, playlistID, videoID)
}

// DeletePlaylist removes a playlist and its entries.
func (s *Store) DeletePlaylist(ctx context.Context, id string) error {
	return s.execOne(ctx, "delete playlist "+id, `DELETE FROM playlists WHERE id = ?`, id)
}

// ListPlaylistVideos returns a playlist's videos in position order.
func (s *Store) ListPlaylistVideos(ctx context.Context, playlistID string) ([]domain.Video, error) {
	videos, err := s.queryVideos(ctx, view.PlaylistVideos(playlistID))
	if err != nil {
		return nil, fmt.Errorf("list playlist videos: %w", err)
	}
	return videos, nil
}
