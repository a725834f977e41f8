package http

import (
	"net/http"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/notekeep/go-secure-notes/internal/config"
	"github.com/notekeep/go-secure-notes/internal/host"
	"github.com/notekeep/go-secure-notes/internal/logger"
	"github.com/notekeep/go-secure-notes/internal/service"
	"github.com/notekeep/go-secure-notes/internal/utils"
)

type Handler struct {
	services *service.Services

	// mu serializes every state-touching operation. The engine assumes
	// one call executes at a time, so the transport is where concurrent
	// requests get lined up.
	mu sync.Mutex

	self          common.Address
	signKey       string
	issuer        string
	tokenDuration time.Duration
	version       string

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.App, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:      services,
		self:          common.HexToAddress(cfg.SelfAddress),
		signKey:       cfg.TokenSignKey,
		issuer:        cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		version:       cfg.Version,
		logger:        logger,
	}
}

// callContext builds the acting identity of the request from the
// authenticated caller stored in the context by the auth middleware.
func (h *Handler) callContext(r *http.Request) (host.CallContext, bool) {
	caller, found := utils.GetCallerFromContext(r.Context())
	if !found {
		return host.CallContext{}, false
	}

	return host.CallContext{
		Caller:    caller,
		BlockTime: uint64(time.Now().Unix()),
		Self:      h.self,
	}, true
}
