package sqlite

import (
	"context"
	"fmt"

	"github.com/reelhouse/reelhouse-server/internal/domain"
	"github.com/reelhouse/reelhouse-server/internal/store"
	"github.com/reelhouse/reelhouse-server/internal/view"
)

// scanVideo scans view.VideoColumns into a domain.Video.
func scanVideo(scanner interface{ Scan(dest ...any) error }, extra ...any) (*domain.Video, error) {
	var (
		v                    domain.Video
		published            int
		createdAt, updatedAt string
	)
	dest := []any{
		&v.ID, &v.OwnerID, &v.Title, &v.Description, &v.VideoURL, &v.ThumbnailURL,
		&v.Duration, &v.Views, &published, &createdAt, &updatedAt,
	}
	if err := scanner.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	v.IsPublished = published != 0

	var err error
	if v.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if v.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &v, nil
}

// scanPost scans view.PostColumns into a domain.Post.
func scanPost(scanner interface{ Scan(dest ...any) error }) (*domain.Post, error) {
	var (
		p                    domain.Post
		createdAt, updatedAt string
	)
	if err := scanner.Scan(&p.ID, &p.OwnerID, &p.Content, &createdAt, &updatedAt); err != nil {
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

// CreateVideo inserts a video.
func (s *Store) CreateVideo(ctx context.Context, v *domain.Video) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO videos (
			id, owner_id, title, description, video_url, thumbnail_url,
			duration, views, is_published, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.ID, v.OwnerID, v.Title, v.Description, v.VideoURL, v.ThumbnailURL,
		v.Duration, v.Views, boolToInt(v.IsPublished), formatTime(v.CreatedAt), formatTime(v.UpdatedAt),
	)
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists.WithCause(err)
	}
	if err != nil {
		return fmt.Errorf("insert video: %w", err)
	}
	return nil
}

// GetVideo retrieves a video by ID regardless of publication state.
func (s *Store) GetVideo(ctx context.Context, id string) (*domain.Video, error) {
	stmt := view.VideoByID(id)
	v, err := scanVideo(s.db.QueryRowContext(ctx, stmt.SQL, stmt.Args...))
	if err != nil {
		return nil, notFound(err, "video %s not found", id)
	}
	return v, nil
}

// SetVideoPublished sets the publication flag and returns the updated video.
func (s *Store) SetVideoPublished(ctx context.Context, id string, published bool) (*domain.Video, error) {
	err := s.execOne(ctx, "publish video "+id,
		`UPDATE videos SET is_published = ?, updated_at = ? WHERE id = ?`,
		boolToInt(published), formatTime(nowUTC()), id)
	if err != nil {
		return nil, err
	}
	return s.GetVideo(ctx, id)
}

// IncrementViews adds one view to a video.
func (s *Store) IncrementViews(ctx context.Context, id string) error {
	return s.execOne(ctx, "increment views "+id, `UPDATE videos SET views = views + 1 WHERE id = ?`, id)
}

// DeleteVideo removes a video. Likes and comments on it go with it.
func (s *Store) DeleteVideo(ctx context.Context, id string) error {
	return s.execOne(ctx, "delete video "+id, `DELETE FROM videos WHERE id = ?`, id)
}

// ListAllVideos returns every video, used to rebuild the search index.
func (s *Store) ListAllVideos(ctx context.Context) ([]domain.Video, error) {
	return s.queryVideos(ctx, view.Statement{SQL: "SELECT " + view.VideoColumns + " FROM videos v ORDER BY v.id"})
}

// CreatePost inserts a community post.
func (s *Store) CreatePost(ctx context.Context, p *domain.Post) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO posts (id, owner_id, content, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.OwnerID, p.Content, formatTime(p.CreatedAt), formatTime(p.UpdatedAt),
	)
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists.WithCause(err)
	}
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

// GetPost retrieves a post by ID.
func (s *Store) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+view.PostColumns+` FROM posts p WHERE p.id = ?`, id)
	p, err := scanPost(row)
	if err != nil {
		return nil, notFound(err, "post %s not found", id)
	}
	return p, nil
}

// DeletePost removes a post with its likes and comments.
func (s *Store) DeletePost(ctx context.Context, id string) error {
	return s.execOne(ctx, "delete post "+id, `DELETE FROM posts WHERE id = ?`, id)
}

// CreateComment inserts a comment if its target exists.
// Returns store.ErrNotFound when the video or post is missing.
func (s *Store) CreateComment(ctx context.Context, c *domain.Comment) error {
	if !c.Target.Kind.Commentable() {
		return store.ErrNotFound.WithMessage(fmt.Sprintf("cannot comment on %s", c.Target.Kind))
	}
	table := targetTables[c.Target.Kind]

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO comments (id, owner_id, target_kind, target_id, content, created_at, updated_at)
		SELECT ?, ?, ?, ?, ?, ?, ?
		WHERE EXISTS (SELECT 1 FROM `+table+` WHERE id = ?)`,
		c.ID, c.OwnerID, string(c.Target.Kind), c.Target.ID, c.Content,
		formatTime(c.CreatedAt), formatTime(c.UpdatedAt), c.Target.ID,
	)
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists.WithCause(err)
	}
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert comment: rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound.WithMessage(fmt.Sprintf("%s %s not found", c.Target.Kind, c.Target.ID))
	}
	return nil
}

// GetComment retrieves a comment by ID.
func (s *Store) GetComment(ctx context.Context, id string) (*domain.Comment, error) {
	var (
		c                    domain.Comment
		kind                 string
		createdAt, updatedAt string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, owner_id, target_kind, target_id, content, created_at, updated_at
		FROM comments WHERE id = ?`, id,
	).Scan(&c.ID, &c.OwnerID, &kind, &c.Target.ID, &c.Content, &createdAt, &updatedAt)
	if err != nil {
		return nil, notFound(err, "comment %s not found", id)
	}
	c.Target.Kind = domain.TargetKind(kind)
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// DeleteComment removes a comment and the likes on it.
func (s *Store) DeleteComment(ctx context.Context, id string) error {
	return s.execOne(ctx, "delete comment "+id, `DELETE FROM comments WHERE id = ?`, id)
}

// queryVideos runs a statement selecting view.VideoColumns.
func (s *Store) queryVideos(ctx context.Context, stmt view.Statement) ([]domain.Video, error) {
	rows, err := s.db.QueryContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	videos := make([]domain.Video, 0)
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, *v)
	}
	return videos, rows.Err()
}

// queryPosts runs a statement selecting view.PostColumns.
func (s *Store) queryPosts(ctx context.Context, stmt view.Statement) ([]domain.Post, error) {
	rows, err := s.db.QueryContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]domain.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

// count runs a COUNT(*) statement.
func (s *Store) count(ctx context.Context, stmt view.Statement) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, stmt.SQL, stmt.Args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
