package http

import (
	"encoding/json"
	"net/http"

	"github.com/notekeep/go-secure-notes/internal/logger"
	"github.com/notekeep/go-secure-notes/internal/utils"
	"github.com/notekeep/go-secure-notes/models"
)

func (h *Handler) registerUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	call, found := h.callContext(r)
	if !found {
		log.Error().Str("func", "*Handler.registerUser").Msg("no caller in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.registerUser").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	err := h.services.Notes.RegisterUser(r.Context(), call, req.Key)
	h.mu.Unlock()
	if err != nil {
		log.Err(err).Str("func", "*Handler.registerUser").Msg("error registering user")
		http.Error(w, "error registering user", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, models.AddressResponse{Address: call.Caller.Hex()}, http.StatusOK)
}

func (h *Handler) updateEncryptionKey(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	call, found := h.callContext(r)
	if !found {
		log.Error().Str("func", "*Handler.updateEncryptionKey").Msg("no caller in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req models.KeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.updateEncryptionKey").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	err := h.services.Notes.UpdateEncryptionKey(r.Context(), call, req.Key)
	h.mu.Unlock()
	if err != nil {
		log.Err(err).Str("func", "*Handler.updateEncryptionKey").Msg("error updating encryption key")
		http.Error(w, "error updating encryption key", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
