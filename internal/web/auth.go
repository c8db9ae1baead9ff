package web

import (
	"errors"
	"net/http"

	"tunecrate/internal/store"
)

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if s.loggedIn(r) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	s.render(w, r, "login", http.StatusOK, pageData{Title: "Log in"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		setFlash(w, "danger", "Invalid form submission.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	token, err := s.users.Login(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, store.ErrInvalidCredentials) {
			setFlash(w, "danger", "Invalid username or password.")
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		s.renderError(w, r, nil)
		return
	}

	setSession(w, token)
	setFlash(w, "success", "Login successful!")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Server) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	if s.loggedIn(r) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	s.render(w, r, "register", http.StatusOK, pageData{Title: "Register"})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		setFlash(w, "danger", "Invalid form submission.")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	nu := store.NewUser{
		Username:  r.PostFormValue("username"),
		Password:  r.PostFormValue("password"),
		FirstName: r.PostFormValue("first_name"),
		LastName:  r.PostFormValue("last_name"),
		Email:     r.PostFormValue("email"),
	}

	if _, err := s.users.Register(r.Context(), nu); err != nil {
		switch {
		case errors.Is(err, store.ErrUserExists):
			setFlash(w, "danger", "Username or email already exists.")
			http.Redirect(w, r, "/register", http.StatusSeeOther)
		default:
			setFlash(w, "danger", err.Error())
			http.Redirect(w, r, "/register", http.StatusSeeOther)
		}
		return
	}

	setFlash(w, "success", "Account created successfully! Please log in.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if token := sessionToken(r); token != "" {
		_ = s.users.Logout(r.Context(), token)
	}
	clearSession(w)
	setFlash(w, "info", "You have been logged out.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// loggedIn reports whether the request carries a valid session.
func (s *Server) loggedIn(r *http.Request) bool {
	token := sessionToken(r)
	if token == "" {
		return false
	}
	_, err := s.users.ByToken(r.Context(), token)
	return err == nil
}
