package store

import (
	"context"
	"errors"
	"fmt"
)

// ErrInvalidRating signals a rating outside the 1-5 range.
var ErrInvalidRating = errors.New("rating must be between 1 and 5")

// RateSong stores or replaces the user's 1-5 rating for a song.
func (s *Store) RateSong(ctx context.Context, userID, songID int64, rating int) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}

	var exists bool
	if err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM songs WHERE id = $1)
	`, songID).Scan(&exists); err != nil {
		return fmt.Errorf("check song: %w", err)
	}
	if !exists {
		return ErrSongNotFound
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO song_ratings (user_id, song_id, rating, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, song_id)
		DO UPDATE SET rating = EXCLUDED.rating, updated_at = NOW()
	`, userID, songID, rating); err != nil {
		return fmt.Errorf("upsert rating: %w", err)
	}
	return nil
}
