package songs

import (
	"context"

	"tunecrate/internal/store"
)

// Store defines persistence operations for the song catalog.
type Store interface {
	SearchSongs(ctx context.Context, filter store.SongFilter) ([]store.Song, error)
	SongByID(ctx context.Context, id int64) (store.Song, error)
}

// Service coordinates catalog queries.
type Service interface {
	Search(ctx context.Context, filter store.SongFilter) ([]store.Song, error)
	Get(ctx context.Context, id int64) (store.Song, error)
}

type service struct {
	store Store
}

// New constructs a songs Service.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Search(ctx context.Context, filter store.SongFilter) ([]store.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.SearchSongs(ctx, filter)
}

func (s *service) Get(ctx context.Context, id int64) (store.Song, error) {
	if err := ctx.Err(); err != nil {
		return store.Song{}, err
	}
	return s.store.SongByID(ctx, id)
}
