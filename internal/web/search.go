package web

import (
	"net/http"

	"tunecrate/internal/store"
)

// searchPage carries results plus the parameters echoed back into the form.
type searchPage struct {
	Results     []store.Song
	Collections []store.Collection
	Term        string
	Field       string
	Sort        string
	Order       string
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request, user store.User) {
	query := r.URL.Query()

	filter := store.SongFilter{
		Field:  query.Get("field"),
		Query:  query.Get("term"),
		SortBy: query.Get("sort"),
		Order:  query.Get("order"),
	}

	results, err := s.songs.Search(r.Context(), filter)
	if err != nil {
		setFlash(w, "danger", "Invalid search parameters.")
		http.Redirect(w, r, "/search", http.StatusSeeOther)
		return
	}

	// The user's collections feed the "add to collection" dropdown.
	collections, err := s.collections.List(r.Context(), user.ID)
	if err != nil {
		s.renderError(w, r, &user)
		return
	}

	s.render(w, r, "search", http.StatusOK, pageData{
		Title: "Search Songs",
		User:  &user,
		Data: searchPage{
			Results:     results,
			Collections: collections,
			Term:        filter.Query,
			Field:       filter.Field,
			Sort:        filter.SortBy,
			Order:       filter.Order,
		},
	})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request, user store.User) {
	recent, err := s.player.Recent(r.Context(), user.ID, 20)
	if err != nil {
		s.renderError(w, r, &user)
		return
	}

	s.render(w, r, "dashboard", http.StatusOK, pageData{
		Title: "Dashboard",
		User:  &user,
		Data:  recent,
	})
}
