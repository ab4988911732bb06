package workers

import (
	"context"
	"sync"

	"github.com/obscuralabs/blind-payroll/internal/config"
	"github.com/obscuralabs/blind-payroll/internal/logger"
	"github.com/obscuralabs/blind-payroll/internal/service"
)

// Workers aggregates the server's background workers: the decryption sweeper
// that expires past-deadline requests, and the run-due watcher that surfaces
// when the next payroll run becomes initializable.
type Workers struct {
	workers []Worker

	wg sync.WaitGroup
}

func NewWorkers(services *service.Services, cfg config.Workers, logger *logger.Logger) *Workers {
	return &Workers{
		workers: []Worker{
			newDecryptionSweeper(services.DecryptionService, cfg.SweepInterval, logger),
			newRunDueWatcher(services.RunService, cfg.DueCheckInterval, logger),
		},
	}
}

// Run launches every worker in its own goroutine and returns immediately.
// The workers stop when ctx is cancelled.
func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		worker := worker
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			worker.Run(ctx)
		}()
	}
}

// Wait blocks until every launched worker has returned.
func (w *Workers) Wait() {
	w.wg.Wait()
}
