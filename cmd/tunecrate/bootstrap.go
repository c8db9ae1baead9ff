package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tunecrate/internal/store"
)

func bootstrapDemoData(ctx context.Context, db *sql.DB, dataStore *store.Store) error {
	if err := ensureDemoUser(ctx, dataStore); err != nil {
		return err
	}
	if err := ensureDemoSongs(ctx, db); err != nil {
		return err
	}
	return nil
}

func ensureDemoUser(ctx context.Context, dataStore *store.Store) error {
	_, err := dataStore.CreateUser(ctx, store.NewUser{
		Username:  "demo",
		Password:  "demo123",
		FirstName: "Demo",
		LastName:  "Listener",
		Email:     "demo@tunecrate.local",
	})
	if err != nil && !errors.Is(err, store.ErrUserExists) {
		return fmt.Errorf("bootstrap demo user: %w", err)
	}
	return nil
}

func ensureDemoSongs(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM songs`).Scan(&count); err != nil {
		return fmt.Errorf("count songs: %w", err)
	}
	if count > 0 {
		return nil
	}

	type seedSong struct {
		Title    string
		Artist   string
		Album    string
		Genre    string
		Length   int
		Released string
	}

	songs := []seedSong{
		{"Turquoise Hexagon Sun", "Boards of Canada", "Music Has the Right to Children", "Electronic", 310, "1998-04-20"},
		{"Roygbiv", "Boards of Canada", "Music Has the Right to Children", "Electronic", 151, "1998-04-20"},
		{"Teardrop", "Massive Attack", "Mezzanine", "Trip Hop", 330, "1998-04-27"},
		{"Angel", "Massive Attack", "Mezzanine", "Trip Hop", 379, "1998-04-27"},
		{"Glory Box", "Portishead", "Dummy", "Trip Hop", 305, "1994-08-22"},
		{"Sour Times", "Portishead", "Dummy", "Trip Hop", 254, "1994-08-22"},
		{"Paranoid Android", "Radiohead", "OK Computer", "Alternative Rock", 383, "1997-05-21"},
		{"No Surprises", "Radiohead", "OK Computer", "Alternative Rock", 229, "1997-05-21"},
		{"Les Nuits", "Nightmares on Wax", "Carboot Soul", "Downtempo", 342, "1999-04-26"},
		{"Kerala", "Bonobo", "Migration", "Electronic", 238, "2017-01-13"},
		{"Says", "Nils Frahm", "Spaces", "Modern Classical", 489, "2013-11-18"},
		{"Them Changes", "Thundercat", "Drunk", "Funk", 187, "2017-02-24"},
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	for _, song := range songs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO songs (title, artist, album, genre, length_seconds, release_date, play_count)
			VALUES ($1, $2, $3, $4, $5, $6, 0)
		`, song.Title, song.Artist, song.Album, song.Genre, song.Length, song.Released); err != nil {
			return fmt.Errorf("insert demo song %q: %w", song.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	tx = nil

	return nil
}
