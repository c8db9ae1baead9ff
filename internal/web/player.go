package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"tunecrate/internal/store"
)

func (s *Server) handlePlaySong(w http.ResponseWriter, r *http.Request, user store.User) {
	id, ok := pathID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}

	if err := s.player.PlaySong(r.Context(), user.ID, id); err != nil {
		if errors.Is(err, store.ErrSongNotFound) {
			setFlash(w, "danger", "Song not found.")
		} else {
			setFlash(w, "danger", "Could not log the play.")
		}
	} else {
		setFlash(w, "success", "Song play logged!")
	}
	redirectBack(w, r, "/dashboard")
}

func (s *Server) handlePlayCollection(w http.ResponseWriter, r *http.Request, user store.User) {
	id, ok := pathID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}

	played, err := s.player.PlayCollection(r.Context(), user.ID, id)
	if err != nil {
		if errors.Is(err, store.ErrCollectionNotFound) {
			setFlash(w, "danger", "Could not play collection. Do you own it?")
			http.Redirect(w, r, "/collections", http.StatusSeeOther)
			return
		}
		setFlash(w, "danger", "Could not play collection.")
		http.Redirect(w, r, collectionPath(id), http.StatusSeeOther)
		return
	}

	if played > 0 {
		setFlash(w, "success", fmt.Sprintf("Logged play for %d songs in the collection.", played))
	} else {
		setFlash(w, "info", "The collection is empty.")
	}
	http.Redirect(w, r, collectionPath(id), http.StatusSeeOther)
}

func (s *Server) handleRateSong(w http.ResponseWriter, r *http.Request, user store.User) {
	songID, err := strconv.ParseInt(r.PostFormValue("song_id"), 10, 64)
	if err != nil {
		setFlash(w, "danger", "Invalid rating request.")
		redirectBack(w, r, "/dashboard")
		return
	}
	rating, err := strconv.Atoi(r.PostFormValue("rating"))
	if err != nil {
		setFlash(w, "danger", "Invalid rating request.")
		redirectBack(w, r, "/dashboard")
		return
	}

	if err := s.player.Rate(r.Context(), user.ID, songID, rating); err != nil {
		switch {
		case errors.Is(err, store.ErrInvalidRating):
			setFlash(w, "danger", "Invalid rating. Must be between 1 and 5.")
		case errors.Is(err, store.ErrSongNotFound):
			setFlash(w, "danger", "Song not found.")
		default:
			setFlash(w, "danger", "Could not save your rating.")
		}
	} else {
		setFlash(w, "success", "Your rating has been saved.")
	}
	redirectBack(w, r, "/dashboard")
}
