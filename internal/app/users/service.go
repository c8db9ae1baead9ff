package users

import (
	"context"

	"tunecrate/internal/store"
)

// Store describes the persistence operations required by the user service.
type Store interface {
	CreateUser(ctx context.Context, nu store.NewUser) (int64, error)
	Authenticate(ctx context.Context, username, password string) (string, error)
	UserByToken(ctx context.Context, token string) (store.User, error)
	DeleteSession(ctx context.Context, token string) error
}

// Service exposes account workflows in an extensible manner.
type Service interface {
	Register(ctx context.Context, nu store.NewUser) (int64, error)
	Login(ctx context.Context, username, password string) (string, error)
	ByToken(ctx context.Context, token string) (store.User, error)
	Logout(ctx context.Context, token string) error
}

type service struct {
	store Store
}

// New wires a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Register(ctx context.Context, nu store.NewUser) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.store.CreateUser(ctx, nu)
}

func (s *service) Login(ctx context.Context, username, password string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.store.Authenticate(ctx, username, password)
}

func (s *service) ByToken(ctx context.Context, token string) (store.User, error) {
	if err := ctx.Err(); err != nil {
		return store.User{}, err
	}
	return s.store.UserByToken(ctx, token)
}

func (s *service) Logout(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeleteSession(ctx, token)
}
