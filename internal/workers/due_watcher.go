package workers

import (
	"context"
	"time"

	"github.com/obscuralabs/blind-payroll/internal/logger"
	"github.com/obscuralabs/blind-payroll/internal/service"
)

// defaultDueCheckInterval is used when no due-check interval is configured.
const defaultDueCheckInterval = 5 * time.Minute

// runDueWatcher surfaces when the next payroll run becomes initializable.
// Runs are operator-initiated; the watcher only logs the transition so that
// operations can alert on a run that is due but not started.
type runDueWatcher struct {
	runs     service.RunService
	interval time.Duration
	logger   *logger.Logger

	// announced remembers the due time already logged so the watcher
	// reports each due transition once, not on every tick.
	announced time.Time
}

func newRunDueWatcher(runs service.RunService, interval time.Duration, logger *logger.Logger) *runDueWatcher {
	if interval <= 0 {
		interval = defaultDueCheckInterval
	}
	return &runDueWatcher{
		runs:     runs,
		interval: interval,
		logger:   logger,
	}
}

func (w *runDueWatcher) Run(ctx context.Context) {
	w.logger.Info().Dur("interval", w.interval).Msg("run-due watcher started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("run-due watcher stopped")
			return
		case <-ticker.C:
			w.check(ctx)
		}
	}
}

func (w *runDueWatcher) check(ctx context.Context) {
	dueAt, ok := w.runs.NextDueAt(ctx)
	if !ok {
		// no run was ever initialized; the first run is always allowed
		return
	}
	if time.Now().Before(dueAt) {
		return
	}
	if w.announced.Equal(dueAt) {
		return
	}

	w.announced = dueAt
	w.logger.Info().Time("due_at", dueAt).Msg("next payroll run is due")
}
