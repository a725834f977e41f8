package workers

import (
	"github.com/notekeep/go-secure-notes/internal/config"
	"github.com/notekeep/go-secure-notes/internal/logger"
	"github.com/notekeep/go-secure-notes/internal/store"
)

type Workers struct {
	workers []Worker
}

// NewWorkers assembles the background workers required by the selected
// storage backend. Currently that is only the badger value-log garbage
// collector; other backends yield an empty aggregate.
func NewWorkers(storages *store.Storages, cfg config.Workers, logger *logger.Logger) *Workers {
	ws := &Workers{}

	if storages.Badger != nil && cfg.BadgerGCInterval > 0 {
		ws.workers = append(ws.workers, newBadgerGCWorker(storages.Badger, cfg.BadgerGCInterval, logger))
	}

	return ws
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}
