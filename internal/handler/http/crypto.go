package http

import (
	"encoding/json"
	"net/http"

	"github.com/notekeep/go-secure-notes/internal/logger"
	"github.com/notekeep/go-secure-notes/internal/utils"
	"github.com/notekeep/go-secure-notes/models"
)

func (h *Handler) encrypt(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	call, found := h.callContext(r)
	if !found {
		log.Error().Str("func", "*Handler.encrypt").Msg("no caller in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req models.EncryptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.encrypt").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	data, err := h.services.Notes.EncryptNote(r.Context(), call, req.Content)
	h.mu.Unlock()
	if err != nil {
		log.Err(err).Str("func", "*Handler.encrypt").Msg("error encrypting data")
		http.Error(w, "error encrypting data", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, models.EncryptResponse{Data: data}, http.StatusOK)
}

func (h *Handler) decrypt(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	call, found := h.callContext(r)
	if !found {
		log.Error().Str("func", "*Handler.decrypt").Msg("no caller in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req models.DecryptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.decrypt").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	content, err := h.services.Notes.DecryptNote(r.Context(), call, req.Data)
	h.mu.Unlock()
	if err != nil {
		log.Err(err).Str("func", "*Handler.decrypt").Msg("error decrypting data")
		http.Error(w, "error decrypting data", http.StatusInternalServerError)
		return
	}

	// Refused decryptions arrive here as sentinel strings, not errors,
	// and still travel back with HTTP 200.
	utils.WriteJSON(w, models.DecryptResponse{Content: content}, http.StatusOK)
}

func (h *Handler) contractAddress(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	call, found := h.callContext(r)
	if !found {
		log.Error().Str("func", "*Handler.contractAddress").Msg("no caller in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	address := h.services.Notes.EncryptionContractAddress(call)
	utils.WriteJSON(w, models.AddressResponse{Address: address.Hex()}, http.StatusOK)
}
