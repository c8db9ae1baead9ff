package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	return New(db), mock, func() { _ = db.Close() }
}

func TestCreateUserSuccess(t *testing.T) {
	s, mock, done := newMockStore(t)
	defer done()

	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO users (username, password_hash, first_name, last_name, email, created_at, last_access_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id
	`)).
		WithArgs("alice", sqlmock.AnyArg(), "Alice", "Smith", "alice@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	id, err := s.CreateUser(context.Background(), NewUser{
		Username:  " alice ",
		Password:  "secret",
		FirstName: "Alice",
		LastName:  "Smith",
		Email:     "alice@example.com",
	})
	if err != nil {
		t.Fatalf("CreateUser error: %v", err)
	}
	if id != 7 {
		t.Fatalf("expected user ID 7, got %d", id)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateUserDuplicate(t *testing.T) {
	s, mock, done := newMockStore(t)
	defer done()

	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO users (username, password_hash, first_name, last_name, email, created_at, last_access_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id
	`)).
		WithArgs("alice", sqlmock.AnyArg(), "", "", "alice@example.com").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := s.CreateUser(context.Background(), NewUser{
		Username: "alice",
		Password: "secret",
		Email:    "alice@example.com",
	})
	if !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestCreateUserMissingFields(t *testing.T) {
	s, _, done := newMockStore(t)
	defer done()

	_, err := s.CreateUser(context.Background(), NewUser{Username: "alice"})
	if err == nil {
		t.Fatal("expected error for missing fields")
	}
}

func TestAuthenticateSuccess(t *testing.T) {
	s, mock, done := newMockStore(t)
	defer done()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, password_hash
		FROM users
		WHERE username = $1
	`)).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "password_hash"}).AddRow(int64(7), hash))

	mock.ExpectExec(regexp.QuoteMeta(`
		UPDATE users
		SET last_access_at = NOW()
		WHERE id = $1
	`)).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectExec(regexp.QuoteMeta(`
		INSERT INTO sessions (token, user_id, created_at)
		VALUES ($1, $2, NOW())
	`)).
		WithArgs(sqlmock.AnyArg(), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	token, err := s.Authenticate(context.Background(), "alice", "secret")
	if err != nil {
		t.Fatalf("Authenticate error: %v", err)
	}
	if token == "" {
		t.Fatal("expected a session token")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAuthenticateWrongPassword(t *testing.T) {
	s, mock, done := newMockStore(t)
	defer done()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, password_hash
		FROM users
		WHERE username = $1
	`)).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "password_hash"}).AddRow(int64(7), hash))

	_, err = s.Authenticate(context.Background(), "alice", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthenticateUnknownUser(t *testing.T) {
	s, mock, done := newMockStore(t)
	defer done()

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, password_hash
		FROM users
		WHERE username = $1
	`)).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id", "password_hash"}))

	_, err := s.Authenticate(context.Background(), "ghost", "whatever")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestUserByToken(t *testing.T) {
	s, mock, done := newMockStore(t)
	defer done()

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT u.id, u.username, u.first_name, u.last_name, u.email, u.created_at, u.last_access_at
		FROM sessions se
		JOIN users u ON u.id = se.user_id
		WHERE se.token = $1
	`)).
		WithArgs("tok").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "first_name", "last_name", "email", "created_at", "last_access_at"}).
			AddRow(int64(7), "alice", "Alice", "Smith", "alice@example.com", testTime(t), testTime(t)))

	u, err := s.UserByToken(context.Background(), "tok")
	if err != nil {
		t.Fatalf("UserByToken error: %v", err)
	}
	if u.ID != 7 || u.Username != "alice" {
		t.Fatalf("unexpected user %+v", u)
	}
}

func TestUserByTokenUnauthorized(t *testing.T) {
	s, mock, done := newMockStore(t)
	defer done()

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT u.id, u.username, u.first_name, u.last_name, u.email, u.created_at, u.last_access_at
		FROM sessions se
		JOIN users u ON u.id = se.user_id
		WHERE se.token = $1
	`)).
		WithArgs("bogus").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "first_name", "last_name", "email", "created_at", "last_access_at"}))

	_, err := s.UserByToken(context.Background(), "bogus")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func testTime(t *testing.T) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, "2024-05-01T12:00:00Z")
	if err != nil {
		t.Fatalf("parse time: %v", err)
	}
	return ts
}

func TestDeleteSession(t *testing.T) {
	s, mock, done := newMockStore(t)
	defer done()

	mock.ExpectExec(regexp.QuoteMeta(`
		DELETE FROM sessions
		WHERE token = $1
	`)).
		WithArgs("tok").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := s.DeleteSession(context.Background(), "tok"); err != nil {
		t.Fatalf("DeleteSession error: %v", err)
	}
}
