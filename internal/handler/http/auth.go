package http

import (
	"encoding/json"
	"net/http"

	"github.com/ethereum/go-ethereum/common"

	"github.com/notekeep/go-secure-notes/internal/logger"
	"github.com/notekeep/go-secure-notes/internal/utils"
	"github.com/notekeep/go-secure-notes/models"
)

// issueToken exchanges an account address for a signed bearer token. The
// gateway has no password database: possession of an address is the whole
// identity, exactly as the engine sees callers.
func (h *Handler) issueToken(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.issueToken").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if !common.IsHexAddress(req.Address) {
		log.Error().Str("func", "*Handler.issueToken").Str("address", req.Address).Msg("invalid address")
		http.Error(w, "invalid address", http.StatusBadRequest)
		return
	}

	token, err := utils.GenerateJWTToken(h.issuer, common.HexToAddress(req.Address), h.tokenDuration, h.signKey)
	if err != nil {
		log.Err(err).Str("func", "*Handler.issueToken").Msg("creation of token failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, models.TokenResponse{Token: token.SignedString}, http.StatusOK)
}
