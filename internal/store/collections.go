package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrCollectionNotFound covers both a missing collection and one owned
	// by a different user. The two cases are deliberately indistinguishable.
	ErrCollectionNotFound = errors.New("collection not found")
	// ErrCollectionExists signals a duplicate title for the same owner.
	ErrCollectionExists = errors.New("collection with that title already exists")
	// ErrSongInCollection signals a duplicate membership insert.
	ErrSongInCollection = errors.New("song already in collection")
	// ErrSongNotInCollection signals a membership delete that matched nothing.
	ErrSongNotInCollection = errors.New("song not in collection")
)

// Collection is a user-owned named list of songs.
type Collection struct {
	ID           int64
	UserID       int64
	Title        string
	SongCount    int
	TotalSeconds int
	CreatedAt    time.Time
}

// CollectionDetails is a collection together with its member songs.
type CollectionDetails struct {
	Collection
	Songs []Song
}

// ListCollections returns the user's collections ordered by title, each with
// its song count and combined length.
func (s *Store) ListCollections(ctx context.Context, userID int64) ([]Collection, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.user_id, c.title, c.created_at,
		       COUNT(cs.song_id), COALESCE(SUM(so.length_seconds), 0)
		FROM collections c
		LEFT JOIN collection_songs cs ON cs.collection_id = c.id
		LEFT JOIN songs so ON so.id = cs.song_id
		WHERE c.user_id = $1
		GROUP BY c.id
		ORDER BY c.title ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	defer rows.Close()

	var collections []Collection
	for rows.Next() {
		var c Collection
		if err := rows.Scan(&c.ID, &c.UserID, &c.Title, &c.CreatedAt, &c.SongCount, &c.TotalSeconds); err != nil {
			return nil, fmt.Errorf("scan collection: %w", err)
		}
		collections = append(collections, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate collections: %w", err)
	}
	return collections, nil
}

// CreateCollection persists a new empty collection for the user.
func (s *Store) CreateCollection(ctx context.Context, userID int64, title string) (Collection, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Collection{}, fmt.Errorf("collection title is required")
	}

	c := Collection{UserID: userID, Title: title}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO collections (user_id, title, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id, created_at
	`, userID, title).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return Collection{}, ErrCollectionExists
		}
		return Collection{}, fmt.Errorf("insert collection: %w", err)
	}
	return c, nil
}

// RenameCollection changes a collection's title. Membership and ID are
// untouched.
func (s *Store) RenameCollection(ctx context.Context, userID, id int64, newTitle string) error {
	newTitle = strings.TrimSpace(newTitle)
	if newTitle == "" {
		return fmt.Errorf("collection title is required")
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE collections
		SET title = $1
		WHERE id = $2 AND user_id = $3
	`, newTitle, id, userID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrCollectionExists
		}
		return fmt.Errorf("rename collection: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrCollectionNotFound
	}
	return nil
}

// DeleteCollection removes a collection; membership rows cascade in the
// database.
func (s *Store) DeleteCollection(ctx context.Context, userID, id int64) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM collections
		WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrCollectionNotFound
	}
	return nil
}

// CollectionByID returns a collection owned by the user with its songs.
func (s *Store) CollectionByID(ctx context.Context, userID, id int64) (CollectionDetails, error) {
	var d CollectionDetails
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, title, created_at
		FROM collections
		WHERE id = $1 AND user_id = $2
	`, id, userID).Scan(&d.ID, &d.UserID, &d.Title, &d.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return CollectionDetails{}, ErrCollectionNotFound
	}
	if err != nil {
		return CollectionDetails{}, fmt.Errorf("get collection: %w", err)
	}

	songs, err := s.collectionSongs(ctx, id)
	if err != nil {
		return CollectionDetails{}, err
	}
	d.Songs = songs
	d.SongCount = len(songs)
	for _, song := range songs {
		d.TotalSeconds += song.LengthSeconds
	}
	return d, nil
}

// AddSongToCollection appends a song to the end of a collection.
func (s *Store) AddSongToCollection(ctx context.Context, userID, collectionID, songID int64) error {
	if err := s.checkCollectionOwner(ctx, userID, collectionID); err != nil {
		return err
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
		INSERT INTO collection_songs (collection_id, song_id, position, added_at)
		SELECT $1, $2, COALESCE(MAX(position) + 1, 0), NOW()
		FROM collection_songs
		WHERE collection_id = $1
	`, collectionID, songID); err != nil {
		if isUniqueViolation(err) {
			return ErrSongInCollection
		}
		return fmt.Errorf("insert membership: %w", err)
	}
	return nil
}

// RemoveSongFromCollection drops a song from a collection.
func (s *Store) RemoveSongFromCollection(ctx context.Context, userID, collectionID, songID int64) error {
	if err := s.checkCollectionOwner(ctx, userID, collectionID); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
		DELETE FROM collection_songs
		WHERE collection_id = $1 AND song_id = $2
	`, collectionID, songID)
	if err != nil {
		return fmt.Errorf("delete membership: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrSongNotInCollection
	}
	return nil
}

func (s *Store) checkCollectionOwner(ctx context.Context, userID, collectionID int64) error {
	var ownerID int64
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id
		FROM collections
		WHERE id = $1
	`, collectionID).Scan(&ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrCollectionNotFound
	}
	if err != nil {
		return fmt.Errorf("check collection owner: %w", err)
	}
	if ownerID != userID {
		return ErrCollectionNotFound
	}
	return nil
}

func (s *Store) collectionSongs(ctx context.Context, collectionID int64) ([]Song, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT so.id, so.title, so.artist, so.album, so.genre, so.length_seconds, so.release_date, so.play_count
		FROM collection_songs cs
		JOIN songs so ON so.id = cs.song_id
		WHERE cs.collection_id = $1
		ORDER BY cs.position ASC, so.id ASC
	`, collectionID)
	if err != nil {
		return nil, fmt.Errorf("list collection songs: %w", err)
	}
	defer rows.Close()

	songs := make([]Song, 0)
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate collection songs: %w", err)
	}
	return songs, nil
}
