package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/holiman/uint256"

	"github.com/notekeep/go-secure-notes/internal/logger"
	"github.com/notekeep/go-secure-notes/internal/utils"
	"github.com/notekeep/go-secure-notes/models"
)

// parseNoteID reads a note id from its URL form. Both 0x-prefixed hex and
// plain decimal are accepted.
func parseNoteID(s string) (*uint256.Int, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return uint256.FromHex(s)
	}
	return uint256.FromDecimal(s)
}

func (h *Handler) createNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	call, found := h.callContext(r)
	if !found {
		log.Error().Str("func", "*Handler.createNote").Msg("no caller in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req models.NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.createNote").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	id, err := h.services.Notes.CreateNote(r.Context(), call, req.Title, req.Content)
	h.mu.Unlock()
	if err != nil {
		log.Err(err).Str("func", "*Handler.createNote").Msg("error creating note")
		http.Error(w, "error creating note", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, models.NoteIDResponse{ID: id.Hex()}, http.StatusCreated)
}

func (h *Handler) getNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	call, found := h.callContext(r)
	if !found {
		log.Error().Str("func", "*Handler.getNote").Msg("no caller in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	id, err := parseNoteID(chi.URLParam(r, "id"))
	if err != nil {
		log.Err(err).Str("func", "*Handler.getNote").Msg("invalid note id")
		http.Error(w, "invalid note id", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	title, content, timestamp, err := h.services.Notes.GetNote(r.Context(), call, id)
	h.mu.Unlock()
	if err != nil {
		log.Err(err).Str("func", "*Handler.getNote").Msg("error getting note")
		http.Error(w, "error getting note", http.StatusInternalServerError)
		return
	}

	// Absent notes come back as the sentinel tuple with HTTP 200. The
	// engine reports routine misuse through values, not failures.
	utils.WriteJSON(w, models.NoteResponse{
		Title:     title,
		Content:   content,
		Timestamp: timestamp.Hex(),
	}, http.StatusOK)
}

func (h *Handler) updateNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	call, found := h.callContext(r)
	if !found {
		log.Error().Str("func", "*Handler.updateNote").Msg("no caller in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	id, err := parseNoteID(chi.URLParam(r, "id"))
	if err != nil {
		log.Err(err).Str("func", "*Handler.updateNote").Msg("invalid note id")
		http.Error(w, "invalid note id", http.StatusBadRequest)
		return
	}

	var req models.NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.updateNote").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	err = h.services.Notes.UpdateNote(r.Context(), call, id, req.Title, req.Content)
	h.mu.Unlock()
	if err != nil {
		log.Err(err).Str("func", "*Handler.updateNote").Msg("error updating note")
		http.Error(w, "error updating note", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) deleteNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	call, found := h.callContext(r)
	if !found {
		log.Error().Str("func", "*Handler.deleteNote").Msg("no caller in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	id, err := parseNoteID(chi.URLParam(r, "id"))
	if err != nil {
		log.Err(err).Str("func", "*Handler.deleteNote").Msg("invalid note id")
		http.Error(w, "invalid note id", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	err = h.services.Notes.DeleteNote(r.Context(), call, id)
	h.mu.Unlock()
	if err != nil {
		log.Err(err).Str("func", "*Handler.deleteNote").Msg("error deleting note")
		http.Error(w, "error deleting note", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) getNoteCount(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	call, found := h.callContext(r)
	if !found {
		log.Error().Str("func", "*Handler.getNoteCount").Msg("no caller in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	h.mu.Lock()
	count, err := h.services.Notes.GetNoteCount(r.Context(), call)
	h.mu.Unlock()
	if err != nil {
		log.Err(err).Str("func", "*Handler.getNoteCount").Msg("error getting note count")
		http.Error(w, "error getting note count", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, models.NoteCountResponse{Count: count.Hex()}, http.StatusOK)
}

func (h *Handler) listNotes(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	call, found := h.callContext(r)
	if !found {
		log.Error().Str("func", "*Handler.listNotes").Msg("no caller in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	h.mu.Lock()
	list, err := h.services.Notes.GetNotesList(r.Context(), call)
	h.mu.Unlock()
	if err != nil {
		log.Err(err).Str("func", "*Handler.listNotes").Msg("error listing notes")
		http.Error(w, "error listing notes", http.StatusInternalServerError)
		return
	}

	response := models.NoteListResponse{
		IDs:        make([]string, 0, list.Len()),
		Titles:     make([]string, 0, list.Len()),
		Timestamps: make([]string, 0, list.Len()),
	}
	for i := 0; i < list.Len(); i++ {
		response.IDs = append(response.IDs, list.IDs[i].Hex())
		response.Titles = append(response.Titles, list.Titles[i])
		response.Timestamps = append(response.Timestamps, list.Timestamps[i].Hex())
	}

	utils.WriteJSON(w, response, http.StatusOK)
}
