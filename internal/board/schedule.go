package board

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/pfrederiksen/stadium-fixtures/internal/logger"
)

// Scheduler refreshes a Holder on a cron schedule
type Scheduler struct {
	cron *cron.Cron
}

// NewScheduler registers a refresh of holder on spec, a standard five-field cron
// expression. Each run gets its own context derived from ctx.
func NewScheduler(ctx context.Context, spec string, holder *Holder, loader *Loader) (*Scheduler, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	_, err := c.AddFunc(spec, func() {
		if ctx.Err() != nil {
			return
		}
		logger.Debug("Scheduled refresh", logger.Fields{"schedule": spec})
		holder.Refresh(ctx, loader)
	})
	if err != nil {
		return nil, fmt.Errorf("parsing refresh schedule %q: %w", spec, err)
	}

	return &Scheduler{cron: c}, nil
}

// Start runs the schedule in the background
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the schedule and waits for a running refresh to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
