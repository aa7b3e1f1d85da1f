package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"tender-sync/internal/pipeline"
	"tender-sync/internal/usecase"
)

// Scheduler runs the sync pipeline on a cron spec. One Scheduler owns
// one cron instance; overlap protection lives in the Syncer, so a slow
// run simply makes the next tick a no-op.
type Scheduler struct {
	cron   *cron.Cron
	sync   *usecase.SyncUsecase
	spec   string
	logger *log.Logger
}

func New(sync *usecase.SyncUsecase, spec string, logger *log.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithLogger(cron.DefaultLogger)),
		sync:   sync,
		spec:   spec,
		logger: logger,
	}
}

// Start registers the job and starts the scheduler. Also runs one sync
// immediately so records exist without waiting for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runSync(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	if s.logger != nil {
		s.logger.Printf("[scheduler] Cron started | spec=%s", s.spec)
	}

	// Run immediately on startup (non-blocking)
	go s.runSync(ctx)

	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	if s.logger != nil {
		s.logger.Printf("[scheduler] Cron stopped")
	}
}

func (s *Scheduler) runSync(ctx context.Context) {
	summary, err := s.sync.Run(ctx)
	if err != nil {
		if errors.Is(err, pipeline.ErrSyncAlreadyRunning) {
			if s.logger != nil {
				s.logger.Printf("[scheduler] Tick skipped, previous run still in flight")
			}
			return
		}
		if s.logger != nil {
			s.logger.Printf("[scheduler] Sync run failed | error=%v", err)
		}
		return
	}
	if s.logger != nil {
		s.logger.Printf("[scheduler] Sync run finished | inserted=%d updated=%d matches=%d",
			summary.RecordsInserted, summary.RecordsUpdated, summary.MatchesCreated)
	}
}
