package handler

import (
	"errors"

	"github.com/notekeep/go-secure-notes/internal/config"
	"github.com/notekeep/go-secure-notes/internal/handler/http"
	"github.com/notekeep/go-secure-notes/internal/logger"
	"github.com/notekeep/go-secure-notes/internal/service"
)

var errNoHandlersAreCreated = errors.New("no handlers are created: no server addresses configured")

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg *config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.Server.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, cfg.App, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
