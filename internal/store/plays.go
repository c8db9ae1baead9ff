package store

import (
	"context"
	"fmt"
	"time"
)

// Play is one row of a user's listening history.
type Play struct {
	SongID   int64
	Title    string
	Artist   string
	PlayedAt time.Time
}

// PlaySong increments the song's play counter by one and records the play.
func (s *Store) PlaySong(ctx context.Context, userID, songID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `
		UPDATE songs
		SET play_count = play_count + 1
		WHERE id = $1
	`, songID)
	if err != nil {
		return fmt.Errorf("increment play count: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrSongNotFound
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO plays (user_id, song_id, played_at)
		VALUES ($1, $2, NOW())
	`, userID, songID); err != nil {
		return fmt.Errorf("record play: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	tx = nil

	return nil
}

// PlayCollection increments the play counter of every member song by exactly
// one and records a play for each. Returns the number of songs played; the
// collection must belong to the user.
func (s *Store) PlayCollection(ctx context.Context, userID, collectionID int64) (int, error) {
	if err := s.checkCollectionOwner(ctx, userID, collectionID); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `
		UPDATE songs
		SET play_count = play_count + 1
		WHERE id IN (SELECT song_id FROM collection_songs WHERE collection_id = $1)
	`, collectionID)
	if err != nil {
		return 0, fmt.Errorf("increment play counts: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO plays (user_id, song_id, played_at)
		SELECT $1, song_id, NOW()
		FROM collection_songs
		WHERE collection_id = $2
	`, userID, collectionID); err != nil {
		return 0, fmt.Errorf("record plays: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}
	tx = nil

	return int(affected), nil
}

// RecentPlays returns the user's latest listening history, newest first.
func (s *Store) RecentPlays(ctx context.Context, userID int64, limit int) ([]Play, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT p.song_id, so.title, so.artist, p.played_at
		FROM plays p
		JOIN songs so ON so.id = p.song_id
		WHERE p.user_id = $1
		ORDER BY p.played_at DESC, p.id DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent plays: %w", err)
	}
	defer rows.Close()

	var plays []Play
	for rows.Next() {
		var p Play
		if err := rows.Scan(&p.SongID, &p.Title, &p.Artist, &p.PlayedAt); err != nil {
			return nil, fmt.Errorf("scan play: %w", err)
		}
		plays = append(plays, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate plays: %w", err)
	}
	return plays, nil
}
