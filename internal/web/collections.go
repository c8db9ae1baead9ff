package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"tunecrate/internal/store"
)

func (s *Server) handleCollections(w http.ResponseWriter, r *http.Request, user store.User) {
	collections, err := s.collections.List(r.Context(), user.ID)
	if err != nil {
		s.renderError(w, r, &user)
		return
	}

	s.render(w, r, "collections", http.StatusOK, pageData{
		Title: "My Collections",
		User:  &user,
		Data:  collections,
	})
}

func (s *Server) handleCreateCollection(w http.ResponseWriter, r *http.Request, user store.User) {
	title := r.PostFormValue("title")
	if title == "" {
		http.Redirect(w, r, "/collections", http.StatusSeeOther)
		return
	}

	if _, err := s.collections.Create(r.Context(), user.ID, title); err != nil {
		if errors.Is(err, store.ErrCollectionExists) {
			setFlash(w, "danger", "A collection with that name already exists.")
		} else {
			setFlash(w, "danger", "Could not create collection.")
		}
	} else {
		setFlash(w, "success", "Collection created successfully.")
	}
	http.Redirect(w, r, "/collections", http.StatusSeeOther)
}

func (s *Server) handleCollectionDetails(w http.ResponseWriter, r *http.Request, user store.User) {
	id, ok := pathID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}

	details, err := s.collections.Get(r.Context(), user.ID, id)
	if err != nil {
		if errors.Is(err, store.ErrCollectionNotFound) {
			setFlash(w, "danger", "Collection not found.")
			http.Redirect(w, r, "/collections", http.StatusSeeOther)
			return
		}
		s.renderError(w, r, &user)
		return
	}

	s.render(w, r, "collection", http.StatusOK, pageData{
		Title: details.Title,
		User:  &user,
		Data:  details,
	})
}

func (s *Server) handleRenameCollection(w http.ResponseWriter, r *http.Request, user store.User) {
	id, ok := pathID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}

	newTitle := r.PostFormValue("new_title")
	if newTitle == "" {
		http.Redirect(w, r, collectionPath(id), http.StatusSeeOther)
		return
	}

	if err := s.collections.Rename(r.Context(), user.ID, id, newTitle); err != nil {
		switch {
		case errors.Is(err, store.ErrCollectionExists):
			setFlash(w, "danger", "A collection with the new name already exists.")
		case errors.Is(err, store.ErrCollectionNotFound):
			setFlash(w, "danger", "Collection not found.")
			http.Redirect(w, r, "/collections", http.StatusSeeOther)
			return
		default:
			setFlash(w, "danger", "Failed to rename collection.")
		}
		http.Redirect(w, r, collectionPath(id), http.StatusSeeOther)
		return
	}

	setFlash(w, "success", "Collection renamed successfully.")
	http.Redirect(w, r, collectionPath(id), http.StatusSeeOther)
}

func (s *Server) handleDeleteCollection(w http.ResponseWriter, r *http.Request, user store.User) {
	id, ok := pathID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}

	if err := s.collections.Delete(r.Context(), user.ID, id); err != nil {
		if errors.Is(err, store.ErrCollectionNotFound) {
			setFlash(w, "danger", "Collection not found.")
		} else {
			setFlash(w, "danger", "Failed to delete collection.")
		}
	} else {
		setFlash(w, "info", "Collection deleted.")
	}
	http.Redirect(w, r, "/collections", http.StatusSeeOther)
}

func (s *Server) handleAddSong(w http.ResponseWriter, r *http.Request, user store.User) {
	id, ok := pathID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}

	songID, err := strconv.ParseInt(r.PostFormValue("song_id"), 10, 64)
	if err != nil {
		setFlash(w, "danger", "Invalid request.")
		redirectBack(w, r, "/dashboard")
		return
	}

	if err := s.collections.AddSong(r.Context(), user.ID, id, songID); err != nil {
		switch {
		case errors.Is(err, store.ErrSongInCollection):
			setFlash(w, "warning", "Song is already in that collection.")
		case errors.Is(err, store.ErrCollectionNotFound):
			setFlash(w, "danger", "Collection not found.")
		case errors.Is(err, store.ErrSongNotFound):
			setFlash(w, "danger", "Song not found.")
		default:
			setFlash(w, "danger", "Failed to add song.")
		}
	} else {
		setFlash(w, "success", "Song added to collection.")
	}
	redirectBack(w, r, "/dashboard")
}

func (s *Server) handleRemoveSong(w http.ResponseWriter, r *http.Request, user store.User) {
	id, ok := pathID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}

	songID, err := strconv.ParseInt(r.PostFormValue("song_id"), 10, 64)
	if err != nil {
		setFlash(w, "danger", "Invalid request.")
		http.Redirect(w, r, collectionPath(id), http.StatusSeeOther)
		return
	}

	if err := s.collections.RemoveSong(r.Context(), user.ID, id, songID); err != nil {
		if errors.Is(err, store.ErrCollectionNotFound) {
			setFlash(w, "danger", "Collection not found.")
			http.Redirect(w, r, "/collections", http.StatusSeeOther)
			return
		}
		setFlash(w, "danger", "Failed to remove song.")
	} else {
		setFlash(w, "info", "Song removed from collection.")
	}
	http.Redirect(w, r, collectionPath(id), http.StatusSeeOther)
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func collectionPath(id int64) string {
	return fmt.Sprintf("/collections/%d", id)
}
