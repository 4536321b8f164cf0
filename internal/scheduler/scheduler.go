package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"

	"StockAnalyzer/internal/model"
	"StockAnalyzer/internal/slogx"
)

// BatchRunner executes one batch. *pipeline.Runner satisfies it.
type BatchRunner interface {
	Run(ctx context.Context, req model.RunRequest) *model.RunSummary
}

// Scheduler runs analysis batches on cron schedules. At most one batch runs
// at a time, whether started by cron or by RunNow.
type Scheduler struct {
	Cron   *cron.Cron
	Runner BatchRunner
	Ctx    context.Context
	log    *slog.Logger

	running sync.Mutex
	wg      sync.WaitGroup
}

// NewScheduler creates a Scheduler whose jobs never overlap.
func NewScheduler(ctx context.Context, runner BatchRunner, log *slog.Logger) *Scheduler {
	cl := slogx.CronLogger{L: log}
	return &Scheduler{
		Cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		Runner: runner,
		Ctx:    ctx,
		log:    log,
	}
}

// RegisterBatch schedules req on spec (six fields, seconds first).
func (s *Scheduler) RegisterBatch(spec string, req model.RunRequest) error {
	if len(req.Symbols) == 0 {
		return fmt.Errorf("register batch %q: no symbols", spec)
	}
	if _, err := s.Cron.AddFunc(spec, func() { s.RunNow(req) }); err != nil {
		return fmt.Errorf("register batch %q: %w", spec, err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info("scheduler started", "entries", len(s.Cron.Entries()))
}

// Stop stops the cron scheduler and waits for every running batch, including
// those started with Trigger, to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.wg.Wait()
	s.log.Info("scheduler stopped")
}

// RunNow executes a batch immediately. It returns nil without running when
// another batch is still in progress.
func (s *Scheduler) RunNow(req model.RunRequest) *model.RunSummary {
	if !s.running.TryLock() {
		s.log.Warn("batch still running, skipping", "symbols", req.Symbols)
		return nil
	}
	defer s.running.Unlock()

	s.log.Info("running scheduled batch", "symbols", req.Symbols, "sma_window", req.SMAWindow)
	return s.Runner.Run(s.Ctx, req)
}

// Trigger runs a batch in the background (RUN_ON_START). Stop waits for it.
func (s *Scheduler) Trigger(req model.RunRequest) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.RunNow(req)
	}()
}
