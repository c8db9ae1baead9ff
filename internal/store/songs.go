package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrSongNotFound indicates a song ID with no catalog row.
var ErrSongNotFound = errors.New("song not found")

// Song is a catalog track with its lifetime play counter.
type Song struct {
	ID            int64
	Title         string
	Artist        string
	Album         string
	Genre         string
	LengthSeconds int
	ReleaseDate   time.Time
	PlayCount     int64
}

// SongFilter defines criteria for searching the catalog.
type SongFilter struct {
	Field  string // title, artist, album, genre; empty means title
	Query  string // substring match; empty matches everything
	SortBy string // title, artist, album, genre, release_date, play_count
	Order  string // ASC or DESC
}

var searchColumns = map[string]string{
	"title":  "title",
	"artist": "artist",
	"album":  "album",
	"genre":  "genre",
}

var sortColumns = map[string]string{
	"title":        "title",
	"artist":       "artist",
	"album":        "album",
	"genre":        "genre",
	"release_date": "release_date",
	"play_count":   "play_count",
}

// SearchSongs returns catalog songs matching the filter. No matches is an
// empty result, not an error.
func (s *Store) SearchSongs(ctx context.Context, filter SongFilter) ([]Song, error) {
	field := filter.Field
	if field == "" {
		field = "title"
	}
	column, ok := searchColumns[field]
	if !ok {
		return nil, fmt.Errorf("unknown search field %q", filter.Field)
	}

	sortBy := filter.SortBy
	if sortBy == "" {
		sortBy = "title"
	}
	sortColumn, ok := sortColumns[sortBy]
	if !ok {
		return nil, fmt.Errorf("unknown sort key %q", filter.SortBy)
	}

	direction := "ASC"
	if strings.EqualFold(filter.Order, "DESC") {
		direction = "DESC"
	}

	query := `
		SELECT id, title, artist, album, genre, length_seconds, release_date, play_count
		FROM songs`
	args := []any{}
	if filter.Query != "" {
		query += fmt.Sprintf(" WHERE %s ILIKE $1", column)
		args = append(args, "%"+filter.Query+"%")
	}
	query += fmt.Sprintf(" ORDER BY %s %s, id ASC LIMIT 200", sortColumn, direction)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search songs: %w", err)
	}
	defer rows.Close()

	var songs []Song
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate songs: %w", err)
	}
	return songs, nil
}

// SongByID returns a single catalog song.
func (s *Store) SongByID(ctx context.Context, id int64) (Song, error) {
	var song Song
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, artist, album, genre, length_seconds, release_date, play_count
		FROM songs
		WHERE id = $1
	`, id).Scan(&song.ID, &song.Title, &song.Artist, &song.Album, &song.Genre,
		&song.LengthSeconds, &song.ReleaseDate, &song.PlayCount)
	if errors.Is(err, sql.ErrNoRows) {
		return Song{}, ErrSongNotFound
	}
	if err != nil {
		return Song{}, fmt.Errorf("get song: %w", err)
	}
	return song, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSong(r rowScanner) (Song, error) {
	var song Song
	if err := r.Scan(&song.ID, &song.Title, &song.Artist, &song.Album, &song.Genre,
		&song.LengthSeconds, &song.ReleaseDate, &song.PlayCount); err != nil {
		return Song{}, fmt.Errorf("scan song: %w", err)
	}
	return song, nil
}
