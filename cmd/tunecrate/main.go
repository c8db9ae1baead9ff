package main

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"tunecrate/internal/logging"
	"tunecrate/internal/store"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger := logging.New(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	logging.SetGlobal(logger)

	db, err := openDatabase(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	dataStore := store.New(db)

	if err := bootstrapDemoData(context.Background(), db, dataStore); err != nil {
		log.Fatal().Err(err).Msg("Failed to bootstrap demo data")
	}

	handler, err := newHTTPHandler(dataStore)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build HTTP handler")
	}

	log.Info().Str("addr", cfg.Addr).Msg("Starting server")
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
