package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain/calendar"
)

const batchSize = 200

type Completer interface {
	CompleteDue(ctx context.Context, cutoff time.Time, limit int) (int, error)
}

// AutoComplete periodically completes booked appointments whose slot ended
// more than grace ago.
type AutoComplete struct {
	completer Completer
	clock     calendar.Clock
	interval  time.Duration
	grace     time.Duration
	log       *zap.Logger
}

func NewAutoComplete(c Completer, clock calendar.Clock, interval, grace time.Duration, log *zap.Logger) *AutoComplete {
	if clock == nil {
		clock = calendar.RealClock{}
	}
	return &AutoComplete{
		completer: c,
		clock:     clock,
		interval:  interval,
		grace:     grace,
		log:       log.With(zap.String("component", "autocomplete")),
	}
}

// Run blocks until ctx is done. A zero interval disables the sweeper.
func (w *AutoComplete) Run(ctx context.Context) error {
	if w.interval <= 0 {
		w.log.Info("auto-complete disabled")
		return nil
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Info("auto-complete started", zap.Duration("interval", w.interval), zap.Duration("grace", w.grace))
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.Sweep(ctx)
		}
	}
}

// Sweep runs one pass, draining full batches.
func (w *AutoComplete) Sweep(ctx context.Context) int {
	cutoff := w.clock.Now().Add(-w.grace)
	total := 0
	for {
		n, err := w.completer.CompleteDue(ctx, cutoff, batchSize)
		total += n
		if err != nil {
			if ctx.Err() == nil {
				w.log.Error("auto-complete sweep failed", zap.Error(err))
			}
			return total
		}
		if n < batchSize {
			return total
		}
	}
}
