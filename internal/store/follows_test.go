package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestListUsersWithEmailFilter(t *testing.T) {
	s, mock, done := newMockStore(t)
	defer done()

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT u.id, u.username, u.email, f.follower IS NOT NULL
		FROM users u
		LEFT JOIN follows f ON f.followee = u.id AND f.follower = $1
		WHERE u.id <> $1 AND u.email ILIKE $2 ORDER BY u.username ASC`)).
		WithArgs(int64(7), "%@example.com%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "followed"}).
			AddRow(int64(8), "bob", "bob@example.com", true).
			AddRow(int64(9), "carol", "carol@example.com", false))

	got, err := s.ListUsers(context.Background(), 7, "@example.com")
	if err != nil {
		t.Fatalf("ListUsers error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(got))
	}
	if !got[0].Followed || got[1].Followed {
		t.Fatalf("unexpected follow flags %+v", got)
	}
}

func TestFollowUser(t *testing.T) {
	s, mock, done := newMockStore(t)
	defer done()

	mock.ExpectExec(regexp.QuoteMeta(`
		INSERT INTO follows (follower, followee)
		VALUES ($1, $2)
		ON CONFLICT (follower, followee) DO NOTHING
	`)).
		WithArgs(int64(7), int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := s.FollowUser(context.Background(), 7, 8); err != nil {
		t.Fatalf("FollowUser error: %v", err)
	}
}

func TestFollowUserSelf(t *testing.T) {
	s, _, done := newMockStore(t)
	defer done()

	if err := s.FollowUser(context.Background(), 7, 7); !errors.Is(err, ErrSelfFollow) {
		t.Fatalf("expected ErrSelfFollow, got %v", err)
	}
}

func TestUnfollowUser(t *testing.T) {
	s, mock, done := newMockStore(t)
	defer done()

	mock.ExpectExec(regexp.QuoteMeta(`
		DELETE FROM follows
		WHERE follower = $1 AND followee = $2
	`)).
		WithArgs(int64(7), int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := s.UnfollowUser(context.Background(), 7, 8); err != nil {
		t.Fatalf("UnfollowUser error: %v", err)
	}
}
