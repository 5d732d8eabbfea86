package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// JobConfig configures a periodic background job.
type JobConfig struct {
	Name            string
	Interval        time.Duration
	InitialBackoff  time.Duration
	MaxBackoff      time.Duration
	BackoffOnErrors []error // errors that trigger backoff instead of plain logging
	RunImmediately  bool    // run once before the first tick
}

// JobRunner manages the lifecycle of a single background job, such as
// the periodic metrics summary. The injected clock makes the schedule
// testable with a fake clock.
type JobRunner struct {
	config JobConfig
	fn     func(ctx context.Context) error
	logger *slog.Logger
	clock  clockwork.Clock
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewJobRunner creates a job runner. A nil clock defaults to the real one.
func NewJobRunner(config JobConfig, fn func(ctx context.Context) error, logger *slog.Logger, clock clockwork.Clock) *JobRunner {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &JobRunner{
		config: config,
		fn:     fn,
		logger: logger,
		clock:  clock,
	}
}

// Start starts the job in a goroutine.
func (r *JobRunner) Start(ctx context.Context) {
	jobCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.run(jobCtx)
	}()
}

// Stop cancels the job and waits for it to finish.
func (r *JobRunner) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
	r.wg.Wait()
}

func (r *JobRunner) run(ctx context.Context) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.ErrorContext(ctx, "panic in job runner", "job", r.config.Name, "panic", rec)
		}
	}()

	if r.config.RunImmediately {
		if err := r.fn(ctx); err != nil {
			r.logger.ErrorContext(ctx, "initial job run failed", "job", r.config.Name, "error", err)
		}
	}

	ticker := r.clock.NewTicker(r.config.Interval)
	defer ticker.Stop()

	backoff := time.Duration(0)

	for {
		select {
		case <-ctx.Done():
			r.logger.InfoContext(ctx, "job stopped", "job", r.config.Name)
			return
		case <-ticker.Chan():
			if err := r.fn(ctx); err != nil {
				if r.shouldBackoff(err) {
					backoff = r.nextBackoff(backoff)
					r.logger.WarnContext(ctx, "job backing off",
						"job", r.config.Name, "backoff", backoff, "error", err)
					ticker.Reset(backoff)
					continue
				}
				r.logger.ErrorContext(ctx, "job failed", "job", r.config.Name, "error", err)
			} else if backoff > 0 {
				r.logger.InfoContext(ctx, "backoff cleared, resuming normal interval",
					"job", r.config.Name)
				backoff = 0
				ticker.Reset(r.config.Interval)
			}
		}
	}
}

func (r *JobRunner) shouldBackoff(err error) bool {
	for _, backoffErr := range r.config.BackoffOnErrors {
		if errors.Is(err, backoffErr) {
			return true
		}
	}
	return false
}

func (r *JobRunner) nextBackoff(current time.Duration) time.Duration {
	initial := r.config.InitialBackoff
	if initial == 0 {
		initial = 30 * time.Second
	}
	maxB := r.config.MaxBackoff
	if maxB == 0 {
		maxB = 5 * time.Minute
	}

	if current == 0 {
		return initial
	}
	next := current * 2
	if next > maxB {
		return maxB
	}
	return next
}
