package worker

import (
	"context"
	"time"

	"github.com/sandiprv9898/salon-flow-pos/internal/infra"

	"github.com/rs/zerolog/log"
)

const (
	DefaultRetryInterval = 30 * time.Second
	MaxReceiptAttempts   = 3
)

// RetryCronConfig holds all dependencies for the retry goroutine.
type RetryCronConfig struct {
	Dispatcher *Dispatcher
	DLQ        *DeadLetterQueue
	CB         *infra.CircuitBreaker
	Interval   time.Duration
}

// StartRetryCron periodically re-enqueues dead-lettered receipt jobs that
// still have attempts left. Ticks are skipped while the mail circuit is open.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig) {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultRetryInterval
	}
	go func() {
		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()

		log.Info().Dur("interval", cfg.Interval).Msg("retry_cron: started")
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				retryOnce(ctx, cfg)
			}
		}
	}()
}

// retryOnce returns the number of jobs re-enqueued.
func retryOnce(ctx context.Context, cfg RetryCronConfig) int {
	if cfg.CB != nil && cfg.CB.State() == infra.CBOpen {
		log.Debug().Msg("retry_cron: circuit breaker is open, skipping tick")
		return 0
	}
	due := cfg.DLQ.Take(func(e DLQEntry) bool { return e.Attempts < MaxReceiptAttempts })
	requeued := 0
	for _, e := range due {
		if err := cfg.Dispatcher.Enqueue(ctx, e.Job); err != nil {
			cfg.DLQ.Push(e.Job, "requeue: "+err.Error())
			continue
		}
		requeued++
	}
	if requeued > 0 {
		log.Info().Int("requeued", requeued).Msg("retry_cron: receipt jobs requeued")
	}
	return requeued
}
