package scout

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Scheduler wraps robfig/cron and periodically runs a discovery cycle for
// the configured role/location query. The on-demand HTTP trigger uses the
// same Pipeline directly.
type Scheduler struct {
	cron     *cron.Cron
	pipeline *Pipeline
	role     string
	location string
	spec     string
	logger   *slog.Logger
}

// NewScheduler creates a Scheduler that fires every intervalHours hours.
func NewScheduler(pipeline *Pipeline, role, location string, intervalHours int, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		pipeline: pipeline,
		role:     role,
		location: location,
		spec:     fmt.Sprintf("@every %dh", intervalHours),
		logger:   logger,
	}
}

// Start registers the cycle and starts the scheduler. One cycle runs
// immediately so the feed is populated without waiting for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.pipeline.RunCycle(ctx, s.role, s.location)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	s.logger.Info("scout scheduler started", slog.String("spec", s.spec))

	go s.pipeline.RunCycle(ctx, s.role, s.location)
	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.logger.Info("scout scheduler stopped")
}
