package web

import (
	"errors"
	"net/http"
	"strconv"

	"tunecrate/internal/store"
)

// usersPage carries profiles plus the echoed email search term.
type usersPage struct {
	Users       []store.Profile
	SearchEmail string
}

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request, user store.User) {
	var email string
	if r.Method == http.MethodPost {
		email = r.PostFormValue("email")
	}

	profiles, err := s.social.Users(r.Context(), user.ID, email)
	if err != nil {
		s.renderError(w, r, &user)
		return
	}

	s.render(w, r, "users", http.StatusOK, pageData{
		Title: "Find Users",
		User:  &user,
		Data: usersPage{
			Users:       profiles,
			SearchEmail: email,
		},
	})
}

func (s *Server) handleFollow(w http.ResponseWriter, r *http.Request, user store.User) {
	followeeID, err := strconv.ParseInt(r.PostFormValue("followee_id"), 10, 64)
	if err != nil {
		setFlash(w, "danger", "Invalid request.")
		redirectBack(w, r, "/users")
		return
	}

	if err := s.social.Follow(r.Context(), user.ID, followeeID); err != nil {
		if errors.Is(err, store.ErrSelfFollow) {
			setFlash(w, "danger", "You cannot follow yourself.")
		} else {
			setFlash(w, "danger", "Could not follow user.")
		}
	} else {
		setFlash(w, "success", "User followed.")
	}
	redirectBack(w, r, "/users")
}

func (s *Server) handleUnfollow(w http.ResponseWriter, r *http.Request, user store.User) {
	followeeID, err := strconv.ParseInt(r.PostFormValue("followee_id"), 10, 64)
	if err != nil {
		setFlash(w, "danger", "Invalid request.")
		redirectBack(w, r, "/users")
		return
	}

	if err := s.social.Unfollow(r.Context(), user.ID, followeeID); err != nil {
		setFlash(w, "danger", "Could not unfollow user.")
	} else {
		setFlash(w, "info", "User unfollowed.")
	}
	redirectBack(w, r, "/users")
}
