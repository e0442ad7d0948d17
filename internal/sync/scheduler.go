package sync

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/goodphonefoundation/thecloudsucks/internal/logger"
)

// Scheduler runs the full sync on a cron schedule. The job is wrapped with
// SkipIfStillRunning, so a run that outlives the schedule interval is never
// overlapped; the next firing is dropped instead.
type Scheduler struct {
	cron *cron.Cron
	log  logger.Logger
}

// syncJob adapts a full sync run to cron.Job so it can sit behind a job
// wrapper chain.
type syncJob struct {
	runner *Runner
	log    logger.Logger
}

func (j syncJob) Run() {
	if _, err := j.runner.SyncAll(context.Background(), nil); err != nil {
		j.log.Error("Scheduled sync failed to start", logger.Error(err))
	}
}

// NewScheduler registers a full sync on the given cron expression
// (standard 5-field syntax, e.g. "0 * * * *" for hourly).
func NewScheduler(runner *Runner, schedule string, log logger.Logger) (*Scheduler, error) {
	c := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DiscardLogger),
	))
	if _, err := c.AddJob(schedule, syncJob{runner: runner, log: log}); err != nil {
		return nil, fmt.Errorf("register sync schedule %q: %w", schedule, err)
	}

	return &Scheduler{cron: c, log: log}, nil
}

// Start begins firing scheduled runs in the background.
func (s *Scheduler) Start() {
	s.log.Info("Sync scheduler started")
	s.cron.Start()
}

// Stop stops the scheduler and waits for an in-flight run to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("Sync scheduler stopped")
}
