package worker

import (
	"context"
	"time"

	"github.com/fox-one/pkg/logger"
)

// Worker a long-running background job
type Worker interface {
	Run(ctx context.Context) error
}

// TickWorker runs a work func on a fixed interval until ctx is done
type TickWorker struct {
	// Delay interval between ticks, defaults to one second
	Delay time.Duration
	// ErrDelay backoff after a failed tick, defaults to Delay
	ErrDelay time.Duration
}

// StartTick tick loop; onWork errors are logged and retried after ErrDelay
func (w *TickWorker) StartTick(ctx context.Context, onWork func(ctx context.Context) error) error {
	delay := w.Delay
	if delay <= 0 {
		delay = time.Second
	}

	errDelay := w.ErrDelay
	if errDelay <= 0 {
		errDelay = delay
	}

	dur := time.Millisecond
	timer := time.NewTimer(dur)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			if err := onWork(ctx); err != nil {
				logger.FromContext(ctx).WithError(err).Errorln("tick failed")
				dur = errDelay
			} else {
				dur = delay
			}

			timer.Reset(dur)
		}
	}
}
