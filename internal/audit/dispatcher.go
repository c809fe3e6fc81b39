package audit

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/metrics"
)

const (
	ActionAppointmentBooked      = "appointment_booked"
	ActionAppointmentRescheduled = "appointment_rescheduled"
	ActionAppointmentCanceled    = "appointment_canceled"
	ActionAppointmentCompleted   = "appointment_completed"
	ActionRatingSubmitted        = "rating_submitted"
	ActionPaymentCreated         = "payment_created"
	ActionPaymentPaid            = "payment_paid"
	ActionServiceChanged         = "service_changed"
	ActionScheduleChanged        = "schedule_changed"
	ActionUserRegistered         = "user_registered"
	ActionUserActiveToggled      = "user_active_toggled"
)

type Event struct {
	UserID   *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// Dispatcher writes audit events off the request path. When the queue is
// full events are dropped; an audit failure never fails a request.
type Dispatcher struct {
	logger  *Logger
	log     *zap.Logger
	metrics *metrics.Collector

	mu     sync.RWMutex
	closed bool
	queue  chan Event
	done   chan struct{}
}

func NewDispatcher(logger *Logger, log *zap.Logger, m *metrics.Collector) *Dispatcher {
	d := &Dispatcher{
		logger:  logger,
		log:     log.With(zap.String("component", "audit")),
		metrics: m,
		queue:   make(chan Event, 100),
		done:    make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := d.logger.Log(ctx, ev)
		cancel()

		if err != nil {
			d.log.Error("audit write failed", zap.String("action", ev.Action), zap.Error(err))
			continue
		}
		if d.metrics != nil {
			d.metrics.AuditEntriesTotal.Inc()
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
		if d.metrics != nil {
			d.metrics.AuditBufferDropped.Inc()
		}
	}
}

// Close stops accepting events and waits for the queue to drain.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func Ptr(id uint) *uint {
	return &id
}
