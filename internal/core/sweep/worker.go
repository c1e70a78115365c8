package sweep

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"pagecore/internal/cursorstore"
)

// Worker periodically reclaims expired cursor records. It runs beside the
// request-serving goroutines and never blocks an in-flight list call; a
// record that outlives its TTL already reads as not found, so sweep timing
// only affects memory, not behavior.
type Worker struct {
	store     cursorstore.Store
	pollEvery time.Duration
}

func NewWorker(store cursorstore.Store) *Worker {
	return &Worker{store: store, pollEvery: 15 * time.Minute}
}

func (w *Worker) Run(ctx context.Context) {
	log.Info().Msg("cursor sweep worker: started")
	t := time.NewTicker(w.pollEvery)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("cursor sweep worker: stopping")
			return
		case <-t.C:
			w.tick(ctx)
		}
	}
}

func (w *Worker) tick(ctx context.Context) {
	removed, err := w.store.Purge(ctx)
	if err != nil {
		log.Error().Err(err).Msg("cursor sweep worker: purge failed")
		return
	}
	if removed > 0 {
		log.Info().Int("removed", removed).Msg("cursor sweep worker: reclaimed expired cursors")
	}
}
