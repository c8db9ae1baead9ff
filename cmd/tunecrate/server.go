package main

import (
	"fmt"
	"net/http"

	"tunecrate/internal/app/collections"
	"tunecrate/internal/app/player"
	"tunecrate/internal/app/social"
	"tunecrate/internal/app/songs"
	"tunecrate/internal/app/users"
	"tunecrate/internal/store"
	"tunecrate/internal/web"
	"tunecrate/internal/web/middleware"
)

func newHTTPHandler(dataStore *store.Store) (http.Handler, error) {
	userSvc := users.New(dataStore)
	songSvc := songs.New(dataStore)
	collectionSvc := collections.New(dataStore)
	playerSvc := player.New(dataStore)
	socialSvc := social.New(dataStore)

	srv, err := web.New(userSvc, songSvc, collectionSvc, playerSvc, socialSvc)
	if err != nil {
		return nil, fmt.Errorf("build web server: %w", err)
	}

	handler := middleware.RequestLogging()(middleware.Recovery()(srv.Routes()))
	return handler, nil
}
