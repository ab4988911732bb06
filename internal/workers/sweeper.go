package workers

import (
	"context"
	"time"

	"github.com/obscuralabs/blind-payroll/internal/logger"
	"github.com/obscuralabs/blind-payroll/internal/service"
)

// defaultSweepInterval is used when no sweep interval is configured.
const defaultSweepInterval = time.Minute

// decryptionSweeper periodically expires decryption requests whose deadline
// has passed without a gateway callback. Expired requests become permanently
// unanswerable; the original requester observes the expired state when
// polling, never an error.
type decryptionSweeper struct {
	decryptions service.DecryptionService
	interval    time.Duration
	logger      *logger.Logger
}

func newDecryptionSweeper(decryptions service.DecryptionService, interval time.Duration, logger *logger.Logger) *decryptionSweeper {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	return &decryptionSweeper{
		decryptions: decryptions,
		interval:    interval,
		logger:      logger,
	}
}

func (s *decryptionSweeper) Run(ctx context.Context) {
	s.logger.Info().Dur("interval", s.interval).Msg("decryption sweeper started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("decryption sweeper stopped")
			return
		case <-ticker.C:
			expired, err := s.decryptions.ExpireOverdue(ctx)
			if err != nil {
				s.logger.Error().Err(err).Msg("sweeping overdue decryption requests failed")
				continue
			}
			if expired > 0 {
				s.logger.Info().Int("expired", expired).Msg("expired overdue decryption requests")
			}
		}
	}
}
