package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrUserExists signals the username or email is already taken.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials indicates a login failure.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUnauthorized indicates an invalid or missing session.
	ErrUnauthorized = errors.New("unauthorized")

	dummyPasswordHash = []byte("$2a$10$CwTycUXWue0Thq9StjUM0uJ8n4VWeNseyX2fA9DE.D7su7J6iYGTC")
)

// Store provides persistence backed by Postgres.
type Store struct {
	db *sql.DB
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// User is an account row without the credential hash.
type User struct {
	ID           int64
	Username     string
	FirstName    string
	LastName     string
	Email        string
	CreatedAt    time.Time
	LastAccessAt time.Time
}

// NewUser carries the registration form fields.
type NewUser struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
}

// CreateUser registers a new account and returns its ID.
func (s *Store) CreateUser(ctx context.Context, nu NewUser) (int64, error) {
	nu.Username = strings.TrimSpace(nu.Username)
	nu.Email = strings.TrimSpace(nu.Email)
	if nu.Username == "" || nu.Password == "" || nu.Email == "" {
		return 0, fmt.Errorf("username, password and email are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(nu.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	var userID int64
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO users (username, password_hash, first_name, last_name, email, created_at, last_access_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id
	`, nu.Username, hash, nu.FirstName, nu.LastName, nu.Email).Scan(&userID)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrUserExists
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}

	return userID, nil
}

// Authenticate validates credentials, bumps the last access timestamp and
// returns a new session token.
func (s *Store) Authenticate(ctx context.Context, username, password string) (string, error) {
	var (
		userID int64
		hash   []byte
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT id, password_hash
		FROM users
		WHERE username = $1
	`, username).Scan(&userID, &hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			_ = bcrypt.CompareHashAndPassword(dummyPasswordHash, []byte(password))
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	if _, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET last_access_at = NOW()
		WHERE id = $1
	`, userID); err != nil {
		return "", fmt.Errorf("touch last access: %w", err)
	}

	token, err := newToken()
	if err != nil {
		return "", fmt.Errorf("create token: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (token, user_id, created_at)
		VALUES ($1, $2, NOW())
	`, token, userID); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	return token, nil
}

// UserByToken resolves a session token to its account.
func (s *Store) UserByToken(ctx context.Context, token string) (User, error) {
	var u User
	err := s.db.QueryRowContext(ctx, `
		SELECT u.id, u.username, u.first_name, u.last_name, u.email, u.created_at, u.last_access_at
		FROM sessions se
		JOIN users u ON u.id = se.user_id
		WHERE se.token = $1
	`, token).Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.Email, &u.CreatedAt, &u.LastAccessAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrUnauthorized
		}
		return User{}, fmt.Errorf("lookup session: %w", err)
	}
	return u, nil
}

// DeleteSession invalidates a session token. Unknown tokens are not an error.
func (s *Store) DeleteSession(ctx context.Context, token string) error {
	if _, err := s.db.ExecContext(ctx, `
		DELETE FROM sessions
		WHERE token = $1
	`, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func newToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
