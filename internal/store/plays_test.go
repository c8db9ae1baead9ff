package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPlaySong(t *testing.T) {
	s, mock, done := newMockStore(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`
		UPDATE songs
		SET play_count = play_count + 1
		WHERE id = $1
	`)).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`
		INSERT INTO plays (user_id, song_id, played_at)
		VALUES ($1, $2, NOW())
	`)).
		WithArgs(int64(7), int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := s.PlaySong(context.Background(), 7, 4); err != nil {
		t.Fatalf("PlaySong error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPlaySongMissing(t *testing.T) {
	s, mock, done := newMockStore(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`
		UPDATE songs
		SET play_count = play_count + 1
		WHERE id = $1
	`)).
		WithArgs(int64(999)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := s.PlaySong(context.Background(), 7, 999)
	if !errors.Is(err, ErrSongNotFound) {
		t.Fatalf("expected ErrSongNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPlayCollection(t *testing.T) {
	s, mock, done := newMockStore(t)
	defer done()

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT user_id
		FROM collections
		WHERE id = $1
	`)).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(int64(7)))

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`
		UPDATE songs
		SET play_count = play_count + 1
		WHERE id IN (SELECT song_id FROM collection_songs WHERE collection_id = $1)
	`)).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 5))
	mock.ExpectExec(regexp.QuoteMeta(`
		INSERT INTO plays (user_id, song_id, played_at)
		SELECT $1, song_id, NOW()
		FROM collection_songs
		WHERE collection_id = $2
	`)).
		WithArgs(int64(7), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 5))
	mock.ExpectCommit()

	played, err := s.PlayCollection(context.Background(), 7, 3)
	if err != nil {
		t.Fatalf("PlayCollection error: %v", err)
	}
	if played != 5 {
		t.Fatalf("expected 5 plays, got %d", played)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPlayCollectionOtherOwner(t *testing.T) {
	s, mock, done := newMockStore(t)
	defer done()

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT user_id
		FROM collections
		WHERE id = $1
	`)).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(int64(8)))

	_, err := s.PlayCollection(context.Background(), 7, 3)
	if !errors.Is(err, ErrCollectionNotFound) {
		t.Fatalf("expected ErrCollectionNotFound, got %v", err)
	}
}

func TestRecentPlays(t *testing.T) {
	s, mock, done := newMockStore(t)
	defer done()

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT p.song_id, so.title, so.artist, p.played_at
		FROM plays p
		JOIN songs so ON so.id = p.song_id
		WHERE p.user_id = $1
		ORDER BY p.played_at DESC, p.id DESC
		LIMIT $2
	`)).
		WithArgs(int64(7), 20).
		WillReturnRows(sqlmock.NewRows([]string{"song_id", "title", "artist", "played_at"}).
			AddRow(int64(4), "Teardrop", "Massive Attack", testTime(t)).
			AddRow(int64(1), "Kerala", "Bonobo", testTime(t)))

	plays, err := s.RecentPlays(context.Background(), 7, 0)
	if err != nil {
		t.Fatalf("RecentPlays error: %v", err)
	}
	if len(plays) != 2 || plays[0].Title != "Teardrop" {
		t.Fatalf("unexpected plays %+v", plays)
	}
}
