// Package scheduler runs the periodic macro refresh.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/mas6446/ai-adjutant-system/internal/macro"
)

// Scheduler refreshes the macro snapshot on a cron schedule so API
// callers always read a warm cache.
type Scheduler struct {
	cron  *cron.Cron
	cache *macro.Cache
	log   zerolog.Logger
}

// NewScheduler creates a Scheduler around the given macro cache.
func NewScheduler(cache *macro.Cache, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:  cron.New(cron.WithSeconds()),
		cache: cache,
		log:   log,
	}
}

// Register adds the macro refresh job. An empty spec disables scheduling.
func (s *Scheduler) Register(ctx context.Context, spec string) error {
	if spec == "" {
		return nil
	}
	if _, err := s.cron.AddFunc(spec, func() { s.refresh(ctx) }); err != nil {
		return fmt.Errorf("register macro refresh: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.log.Info().Msg("scheduler stopped")
}

func (s *Scheduler) refresh(ctx context.Context) {
	snap := s.cache.Refresh(ctx, nil)
	s.log.Info().Int("score", snap.Score).Msg("macro snapshot refreshed")
}
