package workers

import (
	"time"

	"github.com/notekeep/go-secure-notes/internal/logger"
)

// valueLogGC is the slice of the badger backend the GC worker needs.
// Satisfied by [store.Badger].
type valueLogGC interface {
	RunGC() error
}

// badgerGCWorker periodically rewrites the badger value log to reclaim
// space freed by deleted and superseded entries. Badger never runs this on
// its own; an idle process grows its value log forever without it.
type badgerGCWorker struct {
	gc       valueLogGC
	interval time.Duration
	logger   *logger.Logger
}

func newBadgerGCWorker(gc valueLogGC, interval time.Duration, logger *logger.Logger) *badgerGCWorker {
	return &badgerGCWorker{
		gc:       gc,
		interval: interval,
		logger:   logger,
	}
}

func (w *badgerGCWorker) Run() {
	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for range ticker.C {
			if err := w.gc.RunGC(); err != nil {
				w.logger.Err(err).Str("func", "*badgerGCWorker.Run").Msg("badger value log GC failed")
				continue
			}
			w.logger.Debug().Str("func", "*badgerGCWorker.Run").Msg("badger value log GC cycle finished")
		}
	}()
}
