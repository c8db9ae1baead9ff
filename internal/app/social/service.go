package social

import (
	"context"

	"tunecrate/internal/store"
)

// Store defines persistence operations for user following.
type Store interface {
	ListUsers(ctx context.Context, viewerID int64, emailQuery string) ([]store.Profile, error)
	FollowUser(ctx context.Context, followerID, followeeID int64) error
	UnfollowUser(ctx context.Context, followerID, followeeID int64) error
}

// Service coordinates user discovery and follow management.
type Service interface {
	Users(ctx context.Context, viewerID int64, emailQuery string) ([]store.Profile, error)
	Follow(ctx context.Context, followerID, followeeID int64) error
	Unfollow(ctx context.Context, followerID, followeeID int64) error
}

type service struct {
	store Store
}

// New constructs a social Service.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Users(ctx context.Context, viewerID int64, emailQuery string) ([]store.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListUsers(ctx, viewerID, emailQuery)
}

func (s *service) Follow(ctx context.Context, followerID, followeeID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.FollowUser(ctx, followerID, followeeID)
}

func (s *service) Unfollow(ctx context.Context, followerID, followeeID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.UnfollowUser(ctx, followerID, followeeID)
}
