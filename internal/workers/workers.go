package workers

import (
	"context"

	"github.com/MKhiriev/go-field-sync/internal/logger"
)

type Workers struct {
	workers []Worker
	logger  *logger.Logger
}

// NewWorkers groups ws in start order. Nil entries are skipped.
func NewWorkers(log *logger.Logger, ws ...Worker) *Workers {
	group := &Workers{logger: log}
	for _, w := range ws {
		if w != nil {
			group.workers = append(group.workers, w)
		}
	}
	return group
}

func (w *Workers) Start(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Start(ctx)
	}
	w.logger.Info().Int("workers", len(w.workers)).Msg("workers started")
}

// Stop stops the workers in reverse start order.
func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
	w.logger.Info().Msg("workers stopped")
}
