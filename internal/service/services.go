package service

import (
	"github.com/notekeep/go-secure-notes/internal/crypto"
	"github.com/notekeep/go-secure-notes/internal/events"
	"github.com/notekeep/go-secure-notes/internal/logger"
	"github.com/notekeep/go-secure-notes/internal/store"
)

type Services struct {
	Notes NotesService
}

// NewServices wires the cipher engine and event emitter over the selected
// storage backend and exposes the assembled operation surface.
func NewServices(storages *store.Storages, sink events.Sink, logger *logger.Logger) *Services {
	engine := crypto.NewEngine(storages.Fields, logger)
	emitter := events.NewEmitter(sink)

	return &Services{
		Notes: NewNotesService(storages.Fields, engine, emitter, logger),
	}
}
