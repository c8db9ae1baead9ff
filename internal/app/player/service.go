package player

import (
	"context"

	"tunecrate/internal/store"
)

// Store defines persistence operations for playback simulation and ratings.
type Store interface {
	PlaySong(ctx context.Context, userID, songID int64) error
	PlayCollection(ctx context.Context, userID, collectionID int64) (int, error)
	RecentPlays(ctx context.Context, userID int64, limit int) ([]store.Play, error)
	RateSong(ctx context.Context, userID, songID int64, rating int) error
}

// Service coordinates play logging and song ratings.
type Service interface {
	PlaySong(ctx context.Context, userID, songID int64) error
	PlayCollection(ctx context.Context, userID, collectionID int64) (int, error)
	Recent(ctx context.Context, userID int64, limit int) ([]store.Play, error)
	Rate(ctx context.Context, userID, songID int64, rating int) error
}

type service struct {
	store Store
}

// New constructs a player Service.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) PlaySong(ctx context.Context, userID, songID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.PlaySong(ctx, userID, songID)
}

func (s *service) PlayCollection(ctx context.Context, userID, collectionID int64) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.store.PlayCollection(ctx, userID, collectionID)
}

func (s *service) Recent(ctx context.Context, userID int64, limit int) ([]store.Play, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.RecentPlays(ctx, userID, limit)
}

func (s *service) Rate(ctx context.Context, userID, songID int64, rating int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.RateSong(ctx, userID, songID, rating)
}
