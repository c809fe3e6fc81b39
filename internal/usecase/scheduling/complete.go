package scheduling

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/audit"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/httperr"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/models"
)

// Complete is the operator action: the appointment's barber or an admin
// marks it done once it has started.
func (s *Service) Complete(ctx context.Context, sess account.Session, id uint) (*models.Appointment, error) {
	ap, err := s.repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, storeErr(err, errAppointmentNotFound)
	}
	if !sess.IsAdmin() && ap.BarberID != sess.UserID {
		return nil, errForbidden
	}

	now := s.clock.Now()
	if err := appointment.CanComplete(ap.Status); err != nil {
		return nil, err
	}
	if now.Before(ap.StartTime) {
		return nil, httperr.InvalidState("not_started", "Appointment has not started yet.")
	}

	if err := appointment.Complete(ap, now); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateAppointment(ctx, ap); err != nil {
		s.metrics.ConflictsTotal.WithLabelValues("complete", "storage").Inc()
		return nil, storeErr(err, errAppointmentNotFound)
	}

	s.metrics.TransitionsTotal.WithLabelValues(string(ap.Status)).Inc()
	s.log.Info("appointment completed", zap.Uint("appointment_id", ap.ID), zap.Uint("by", sess.UserID))
	s.dispatch(&sess, audit.ActionAppointmentCompleted, ap, nil)

	return ap, nil
}

// CompleteDue is the system action: it completes booked appointments that
// ended at or before cutoff. Rows changed concurrently are skipped and
// picked up on the next sweep if still due.
func (s *Service) CompleteDue(ctx context.Context, cutoff time.Time, limit int) (int, error) {
	due, err := s.repo.ListDueForCompletion(ctx, cutoff, limit)
	if err != nil {
		return 0, err
	}

	now := s.clock.Now()
	done := 0
	for i := range due {
		if err := ctx.Err(); err != nil {
			return done, err
		}

		ap := &due[i]
		if err := appointment.Complete(ap, now); err != nil {
			continue
		}
		if err := s.repo.UpdateAppointment(ctx, ap); err != nil {
			if errors.Is(err, domain.ErrStaleVersion) || errors.Is(err, domain.ErrNotFound) {
				s.log.Debug("skip auto-complete", zap.Uint("appointment_id", ap.ID), zap.Error(err))
				continue
			}
			return done, err
		}

		done++
		s.metrics.TransitionsTotal.WithLabelValues(string(ap.Status)).Inc()
		s.metrics.AutoCompletedTotal.Inc()
		s.dispatch(nil, audit.ActionAppointmentCompleted, ap, map[string]any{"auto": true})
	}

	if done > 0 {
		s.log.Info("auto-completed appointments", zap.Int("count", done), zap.Time("cutoff", cutoff))
	}
	return done, nil
}
