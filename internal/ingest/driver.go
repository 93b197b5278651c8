package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ErrTooManyFailures is returned by Driver.Run when the retry policy gives up.
var ErrTooManyFailures = errors.New("too many consecutive failed cycles")

// Runner runs one cycle. *Cycle satisfies it.
type Runner interface {
	Run(ctx context.Context) Result
}

// Driver repeats a cycle on a fixed interval.
type Driver struct {
	cfg    Config
	cycle  Runner
	logger *slog.Logger
}

// NewDriver creates a new Driver.
func NewDriver(cfg Config, cycle Runner, logger *slog.Logger) *Driver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Driver{
		cfg:    cfg,
		cycle:  cycle,
		logger: logger,
	}
}

// Run blocks until ctx is canceled (returns nil) or the retry policy aborts
// (returns an error wrapping ErrTooManyFailures).
func (d *Driver) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.cfg.Interval)
	defer ticker.Stop()

	d.logger.Info("ingestion loop started", "interval", d.cfg.Interval)

	failures := 0
	for {
		res := d.cycle.Run(ctx)

		switch res.Outcome {
		case Skipped, Failed:
			failures++
		case Ingested:
			failures = 0
		}

		switch d.cfg.Policy.Decide(res.Outcome, failures) {
		case Stop:
			d.logger.Info("ingestion loop stopped")
			return nil
		case Abort:
			return fmt.Errorf("%w (%d): %w", ErrTooManyFailures, failures, res.Err)
		}

		select {
		case <-ctx.Done():
			d.logger.Info("ingestion loop stopped")
			return nil
		case <-ticker.C:
		}
	}
}
