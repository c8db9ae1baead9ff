// Package web serves the server-rendered HTML frontend.
package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"tunecrate/internal/store"
)

// UserService captures the account operations needed by the HTTP handlers.
type UserService interface {
	Register(ctx context.Context, nu store.NewUser) (int64, error)
	Login(ctx context.Context, username, password string) (string, error)
	ByToken(ctx context.Context, token string) (store.User, error)
	Logout(ctx context.Context, token string) error
}

// SongService exposes catalog search.
type SongService interface {
	Search(ctx context.Context, filter store.SongFilter) ([]store.Song, error)
	Get(ctx context.Context, id int64) (store.Song, error)
}

// CollectionService coordinates collection workflows.
type CollectionService interface {
	List(ctx context.Context, userID int64) ([]store.Collection, error)
	Create(ctx context.Context, userID int64, title string) (store.Collection, error)
	Rename(ctx context.Context, userID, id int64, newTitle string) error
	Delete(ctx context.Context, userID, id int64) error
	Get(ctx context.Context, userID, id int64) (store.CollectionDetails, error)
	AddSong(ctx context.Context, userID, collectionID, songID int64) error
	RemoveSong(ctx context.Context, userID, collectionID, songID int64) error
}

// PlayerService coordinates playback simulation and ratings.
type PlayerService interface {
	PlaySong(ctx context.Context, userID, songID int64) error
	PlayCollection(ctx context.Context, userID, collectionID int64) (int, error)
	Recent(ctx context.Context, userID int64, limit int) ([]store.Play, error)
	Rate(ctx context.Context, userID, songID int64, rating int) error
}

// SocialService coordinates user discovery and follows.
type SocialService interface {
	Users(ctx context.Context, viewerID int64, emailQuery string) ([]store.Profile, error)
	Follow(ctx context.Context, followerID, followeeID int64) error
	Unfollow(ctx context.Context, followerID, followeeID int64) error
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	users       UserService
	songs       SongService
	collections CollectionService
	player      PlayerService
	social      SocialService
	templates   templateSet
}

// New configures a Server with the given services.
func New(
	users UserService,
	songs SongService,
	collections CollectionService,
	player PlayerService,
	social SocialService,
) (*Server, error) {
	templates, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Server{
		users:       users,
		songs:       songs,
		collections: collections,
		player:      player,
		social:      social,
		templates:   templates,
	}, nil
}

// Routes exposes the HTTP handlers for the whole site.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Account routes
	mux.HandleFunc("GET /{$}", s.handleLoginPage)
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("GET /register", s.handleRegisterPage)
	mux.HandleFunc("POST /register", s.handleRegister)
	mux.HandleFunc("POST /logout", s.handleLogout)

	// Core pages
	mux.HandleFunc("GET /dashboard", s.requireUser(s.handleDashboard))
	mux.HandleFunc("GET /search", s.requireUser(s.handleSearch))

	// Collection management
	mux.HandleFunc("GET /collections", s.requireUser(s.handleCollections))
	mux.HandleFunc("POST /collections/create", s.requireUser(s.handleCreateCollection))
	mux.HandleFunc("GET /collections/{id}", s.requireUser(s.handleCollectionDetails))
	mux.HandleFunc("POST /collections/{id}/rename", s.requireUser(s.handleRenameCollection))
	mux.HandleFunc("POST /collections/{id}/delete", s.requireUser(s.handleDeleteCollection))
	mux.HandleFunc("POST /collections/{id}/songs/add", s.requireUser(s.handleAddSong))
	mux.HandleFunc("POST /collections/{id}/songs/remove", s.requireUser(s.handleRemoveSong))

	// Playback simulation and ratings
	mux.HandleFunc("POST /play/song/{id}", s.requireUser(s.handlePlaySong))
	mux.HandleFunc("POST /play/collection/{id}", s.requireUser(s.handlePlayCollection))
	mux.HandleFunc("POST /rate/song", s.requireUser(s.handleRateSong))

	// User following
	mux.HandleFunc("GET /users", s.requireUser(s.handleUsers))
	mux.HandleFunc("POST /users", s.requireUser(s.handleUsers))
	mux.HandleFunc("POST /follow", s.requireUser(s.handleFollow))
	mux.HandleFunc("POST /unfollow", s.requireUser(s.handleUnfollow))

	return mux
}

const (
	sessionCookie = "tunecrate_session"
	flashCookie   = "tunecrate_flash"
)

// flash is a one-shot notification carried across a redirect.
type flash struct {
	Level   string // success, info, warning, danger
	Message string
}

type authedHandler func(http.ResponseWriter, *http.Request, store.User)

// requireUser resolves the session cookie to a user or sends the visitor to
// the login page.
func (s *Server) requireUser(next authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := sessionToken(r)
		if token == "" {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		user, err := s.users.ByToken(r.Context(), token)
		if err != nil {
			if errors.Is(err, store.ErrUnauthorized) {
				clearSession(w)
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}
			s.renderError(w, r, nil)
			return
		}

		next(w, r, user)
	}
}

func sessionToken(r *http.Request) string {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return ""
	}
	return c.Value
}

func setSession(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

func setFlash(w http.ResponseWriter, level, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(level + "|" + message),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash reads and clears the pending flash message, if any.
func popFlash(w http.ResponseWriter, r *http.Request) *flash {
	c, err := r.Cookie(flashCookie)
	if err != nil || c.Value == "" {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	raw, err := url.QueryUnescape(c.Value)
	if err != nil {
		return nil
	}
	level, message, ok := strings.Cut(raw, "|")
	if !ok {
		return &flash{Level: "info", Message: raw}
	}
	return &flash{Level: level, Message: message}
}

// pageData is the payload every template receives.
type pageData struct {
	Title string
	User  *store.User
	Flash *flash
	Data  any
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, page string, status int, data pageData) {
	if data.Flash == nil {
		data.Flash = popFlash(w, r)
	}

	tmpl, ok := s.templates[page]
	if !ok {
		log.Error().Str("page", page).Msg("unknown template")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	// Render to a buffer first so a template failure never sends half a page.
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		log.Error().Err(err).Str("page", page).Msg("render template")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// renderError shows the generic "try again" page for unexpected failures.
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, user *store.User) {
	s.render(w, r, "error", http.StatusInternalServerError, pageData{
		Title: "Something went wrong",
		User:  user,
	})
}

// redirectBack returns to the page the form was submitted from.
func redirectBack(w http.ResponseWriter, r *http.Request, fallback string) {
	target := r.Referer()
	if target == "" {
		target = fallback
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
