package sqlite

import (
	"context"
	"fmt"

	"github.com/reelhouse/reelhouse-server/internal/domain"
	"github.com/reelhouse/reelhouse-server/internal/store"
)

// userColumns is the ordered list of columns selected in user queries.
// Must match the scan order in scanUser.
const userColumns = `id, username, email, full_name, avatar, cover_image, created_at, updated_at`

// scanUser scans a sql.Row (or sql.Rows via its Scan method) into a domain.User.
func scanUser(scanner interface{ Scan(dest ...any) error }) (*domain.User, error) {
	var (
		u                    domain.User
		createdAt, updatedAt string
	)
	err := scanner.Scan(&u.ID, &u.Username, &u.Email, &u.FullName, &u.Avatar, &u.CoverImage, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if u.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// scanOwner scans an owner projection whose columns may be NULL from a LEFT JOIN.
func scanOwner(id, username, fullName, avatar *string) *domain.OwnerSummary {
	if id == nil {
		return nil
	}
	o := &domain.OwnerSummary{ID: *id}
	if username != nil {
		o.Username = *username
	}
	if fullName != nil {
		o.FullName = *fullName
	}
	if avatar != nil {
		o.Avatar = *avatar
	}
	return o
}

// CreateUser inserts a new user. The username must already be normalized.
// Returns store.ErrAlreadyExists if the ID, username or email is taken.
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Username, user.Email, user.FullName, user.Avatar, user.CoverImage,
		formatTime(user.CreatedAt), formatTime(user.UpdatedAt),
	)
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists.WithCause(err)
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetUser retrieves a user by ID.
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err != nil {
		return nil, notFound(err, "user %s not found", id)
	}
	return u, nil
}

// GetUserByUsername retrieves a user by normalized username.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	u, err := scanUser(row)
	if err != nil {
		return nil, notFound(err, "user %q not found", username)
	}
	return u, nil
}

// DeleteUser hard-deletes a user. Subscription and like edges, watch history
// and playlists cascade; authored content stays and loses its owner projection.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	return s.execOne(ctx, "delete user "+id, `DELETE FROM users WHERE id = ?`, id)
}
