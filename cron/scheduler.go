// Package cron runs recurring jobs on cron schedules using robfig/cron.
package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/fwojciec/giftwatch"
	"github.com/robfig/cron/v3"
)

// Job is a unit of scheduled work. Its context is canceled when the
// scheduler stops.
type Job func(ctx context.Context)

// Scheduler runs jobs on standard five-field cron specs or descriptors
// such as "@hourly" and "@every 6h". A run that is still in progress when
// the next one is due is skipped.
type Scheduler struct {
	cron       *cron.Cron
	logger     *slog.Logger
	runOnStart bool

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	entries []cron.EntryID
	wg      sync.WaitGroup
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger for schedule events and job panics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// WithRunOnStart runs every job once immediately when the scheduler starts.
func WithRunOnStart() Option {
	return func(s *Scheduler) {
		s.runOnStart = true
	}
}

// NewScheduler creates a new Scheduler.
func NewScheduler(opts ...Option) *Scheduler {
	s := &Scheduler{
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}

	logger := cronLogger{s.logger}
	s.cron = cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	s.ctx, s.cancel = context.WithCancel(context.Background())
	return s
}

// Schedule adds job under spec. It returns EINVALID when spec cannot be
// parsed.
func (s *Scheduler) Schedule(spec string, job Job) error {
	id, err := s.cron.AddFunc(spec, func() { job(s.ctx) })
	if err != nil {
		return giftwatch.Errorf(giftwatch.EINVALID, "invalid schedule %q: %v", spec, err)
	}

	s.mu.Lock()
	s.entries = append(s.entries, id)
	s.mu.Unlock()
	return nil
}

// Start begins running scheduled jobs in the background.
func (s *Scheduler) Start() {
	s.cron.Start()

	if !s.runOnStart {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.entries {
		job := s.cron.Entry(id).WrappedJob
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			job.Run()
		}()
	}
}

// Next returns the earliest upcoming run, or the zero time when the
// scheduler has not started or has no jobs.
func (s *Scheduler) Next() time.Time {
	var next time.Time
	for _, e := range s.cron.Entries() {
		if e.Next.IsZero() {
			continue
		}
		if next.IsZero() || e.Next.Before(next) {
			next = e.Next
		}
	}
	return next
}

// Stop stops scheduling new runs, cancels the context of running jobs
// and waits for them to return.
func (s *Scheduler) Stop() {
	done := s.cron.Stop()
	s.cancel()
	<-done.Done()
	s.wg.Wait()
}

// cronLogger adapts slog to the cron.Logger interface.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, "err", err)...)
}
