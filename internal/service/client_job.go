package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-field-sync/internal/logger"
)

const defaultJobInterval = 5 * time.Minute

type clientJob struct {
	name      string
	interval  time.Duration
	immediate bool
	run       func(ctx context.Context)
	logger    *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func newClientJob(name string, interval time.Duration, immediate bool, run func(ctx context.Context), log *logger.Logger) *clientJob {
	if interval <= 0 {
		interval = defaultJobInterval
	}

	return &clientJob{
		name:      name,
		interval:  interval,
		immediate: immediate,
		run:       run,
		logger:    log.WithComponent(name),
	}
}

// NewSyncJob returns a job requesting a sync every interval. Ticks while
// offline or while a sync is running are no-ops.
func NewSyncJob(monitor ConnectivityMonitor, interval time.Duration, log *logger.Logger) ClientJob {
	return newClientJob("sync-job", interval, false, monitor.RequestSync, log)
}

// NewRetentionJob returns a job purging resolved conflicts older than
// retentionDays every interval, starting right away.
func NewRetentionJob(conflicts ConflictStore, retentionDays int, interval time.Duration, log *logger.Logger) ClientJob {
	return newClientJob("retention-job", interval, true, func(ctx context.Context) {
		conflicts.ClearResolvedConflicts(ctx, retentionDays)
	}, log)
}

// Start stops any previously running loop, then launches a goroutine calling
// run every interval until ctx is cancelled or Stop is called.
func (j *clientJob) Start(ctx context.Context) {
	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	j.logger.Info().Dur("interval", j.interval).Msg("job started")

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(j.interval)
		defer t.Stop()

		if j.immediate {
			j.run(jobCtx)
		}

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.run(jobCtx)
			}
		}
	}()
}

// Stop cancels the loop and blocks until it has exited. Safe to call when the
// job is not running.
func (j *clientJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
		j.wg.Wait()
		j.logger.Info().Msg("job stopped")
	}
}
