package scheduling

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/audit"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/models"
)

// Reschedule moves a booked appointment to newStart. The id and duration
// are kept; the appointment's own current slot never conflicts with it.
func (s *Service) Reschedule(ctx context.Context, sess account.Session, id uint, newStart time.Time) (*models.Appointment, error) {
	ap, err := s.repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, storeErr(err, errAppointmentNotFound)
	}
	if !sess.IsAdmin() && ap.ClientID != sess.UserID {
		return nil, errForbidden
	}
	if err := appointment.CanReschedule(ap.Status); err != nil {
		return nil, err
	}
	if newStart.IsZero() || !newStart.After(s.clock.Now()) {
		return nil, errPastStart
	}

	unlock, err := s.lockBarber(ctx, ap.BarberID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	// Reload under the lock; the row may have moved since the first read.
	ap, err = s.repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, storeErr(err, errAppointmentNotFound)
	}
	if err := appointment.CanReschedule(ap.Status); err != nil {
		return nil, err
	}

	slot := calendar.NewSlot(newStart, ap.DurationMinutes)
	res, err := s.availability(ctx, ap.BarberID, slot, ap.ID)
	if err != nil {
		return nil, err
	}
	if !res.Available {
		s.metrics.ConflictsTotal.WithLabelValues("reschedule", conflictCause(res)).Inc()
		return nil, unavailable(res)
	}

	oldStart := ap.StartTime
	if err := appointment.Reschedule(ap, newStart.In(s.loc)); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateAppointment(ctx, ap); err != nil {
		s.metrics.ConflictsTotal.WithLabelValues("reschedule", "storage").Inc()
		return nil, storeErr(err, errAppointmentNotFound)
	}
	unlock()

	s.metrics.TransitionsTotal.WithLabelValues("rescheduled").Inc()
	s.log.Info("appointment rescheduled",
		zap.Uint("appointment_id", ap.ID),
		zap.Time("from", oldStart),
		zap.Time("to", ap.StartTime),
	)
	s.dispatch(&sess, audit.ActionAppointmentRescheduled, ap, map[string]any{
		"from": oldStart,
		"to":   ap.StartTime,
	})

	return ap, nil
}
