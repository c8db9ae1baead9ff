package collections

import (
	"context"

	"tunecrate/internal/store"
)

// Store defines persistence operations for song collections.
type Store interface {
	ListCollections(ctx context.Context, userID int64) ([]store.Collection, error)
	CreateCollection(ctx context.Context, userID int64, title string) (store.Collection, error)
	RenameCollection(ctx context.Context, userID, id int64, newTitle string) error
	DeleteCollection(ctx context.Context, userID, id int64) error
	CollectionByID(ctx context.Context, userID, id int64) (store.CollectionDetails, error)
	AddSongToCollection(ctx context.Context, userID, collectionID, songID int64) error
	RemoveSongFromCollection(ctx context.Context, userID, collectionID, songID int64) error
}

// Service coordinates collection-related operations.
type Service interface {
	List(ctx context.Context, userID int64) ([]store.Collection, error)
	Create(ctx context.Context, userID int64, title string) (store.Collection, error)
	Rename(ctx context.Context, userID, id int64, newTitle string) error
	Delete(ctx context.Context, userID, id int64) error
	Get(ctx context.Context, userID, id int64) (store.CollectionDetails, error)
	AddSong(ctx context.Context, userID, collectionID, songID int64) error
	RemoveSong(ctx context.Context, userID, collectionID, songID int64) error
}

type service struct {
	store Store
}

// New constructs a collections Service.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) List(ctx context.Context, userID int64) ([]store.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListCollections(ctx, userID)
}

func (s *service) Create(ctx context.Context, userID int64, title string) (store.Collection, error) {
	if err := ctx.Err(); err != nil {
		return store.Collection{}, err
	}
	return s.store.CreateCollection(ctx, userID, title)
}

func (s *service) Rename(ctx context.Context, userID, id int64, newTitle string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.RenameCollection(ctx, userID, id, newTitle)
}

func (s *service) Delete(ctx context.Context, userID, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeleteCollection(ctx, userID, id)
}

func (s *service) Get(ctx context.Context, userID, id int64) (store.CollectionDetails, error) {
	if err := ctx.Err(); err != nil {
		return store.CollectionDetails{}, err
	}
	return s.store.CollectionByID(ctx, userID, id)
}

func (s *service) AddSong(ctx context.Context, userID, collectionID, songID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.AddSongToCollection(ctx, userID, collectionID, songID)
}

func (s *service) RemoveSong(ctx context.Context, userID, collectionID, songID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.RemoveSongFromCollection(ctx, userID, collectionID, songID)
}
