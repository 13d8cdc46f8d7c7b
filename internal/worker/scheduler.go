package worker

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog"
)

// Scheduler runs the polling job on a fixed interval.
type Scheduler struct {
	cron     *gocron.Scheduler
	job      *PollJob
	interval time.Duration
	logger   zerolog.Logger
}

// NewScheduler creates a scheduler that runs the job every interval.
func NewScheduler(job *PollJob, interval time.Duration, logger zerolog.Logger) *Scheduler {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Scheduler{
		cron:     gocron.NewScheduler(time.UTC),
		job:      job,
		interval: interval,
		logger:   logger,
	}
}

// Start schedules the job and begins running it asynchronously. The
// first cycle runs immediately rather than waiting a full interval.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.Every(s.interval).StartImmediately().Do(func() {
		s.job.Run(ctx)
	})
	if err != nil {
		return err
	}

	s.cron.StartAsync()
	s.logger.Info().Dur("interval", s.interval).Msg("poll scheduler started")
	return nil
}

// Stop halts the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.logger.Info().Msg("poll scheduler stopped")
}
