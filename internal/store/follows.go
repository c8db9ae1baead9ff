package store

import (
	"context"
	"errors"
	"fmt"
)

// ErrSelfFollow rejects following your own account.
var ErrSelfFollow = errors.New("cannot follow yourself")

// Profile is another user as seen from the follow page.
type Profile struct {
	ID       int64
	Username string
	Email    string
	Followed bool
}

// ListUsers returns other accounts, optionally filtered by email substring,
// flagging the ones the viewer already follows.
func (s *Store) ListUsers(ctx context.Context, viewerID int64, emailQuery string) ([]Profile, error) {
	query := `
		SELECT u.id, u.username, u.email, f.follower IS NOT NULL
		FROM users u
		LEFT JOIN follows f ON f.followee = u.id AND f.follower = $1
		WHERE u.id <> $1`
	args := []any{viewerID}
	if emailQuery != "" {
		query += " AND u.email ILIKE $2"
		args = append(args, "%"+emailQuery+"%")
	}
	query += " ORDER BY u.username ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var profiles []Profile
	for rows.Next() {
		var p Profile
		if err := rows.Scan(&p.ID, &p.Username, &p.Email, &p.Followed); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return profiles, nil
}

// FollowUser records that follower follows followee. Already following is
// not an error.
func (s *Store) FollowUser(ctx context.Context, followerID, followeeID int64) error {
	if followerID == followeeID {
		return ErrSelfFollow
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO follows (follower, followee)
		VALUES ($1, $2)
		ON CONFLICT (follower, followee) DO NOTHING
	`, followerID, followeeID); err != nil {
		return fmt.Errorf("insert follow: %w", err)
	}
	return nil
}

// UnfollowUser removes a follow edge. Not following is not an error.
func (s *Store) UnfollowUser(ctx context.Context, followerID, followeeID int64) error {
	if _, err := s.db.ExecContext(ctx, `
		DELETE FROM follows
		WHERE follower = $1 AND followee = $2
	`, followerID, followeeID); err != nil {
		return fmt.Errorf("delete follow: %w", err)
	}
	return nil
}
