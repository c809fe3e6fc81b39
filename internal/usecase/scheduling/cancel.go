package scheduling

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/audit"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/models"
)

// Cancel frees the slot of a booked appointment. It does not take the
// barber lock; a concurrent write is detected by the row version.
func (s *Service) Cancel(ctx context.Context, sess account.Session, id uint, reason string) (*models.Appointment, error) {
	ap, err := s.repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, storeErr(err, errAppointmentNotFound)
	}
	if !participates(sess, ap) {
		return nil, errForbidden
	}

	if err := appointment.Cancel(ap, actorName(sess), reason, s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateAppointment(ctx, ap); err != nil {
		s.metrics.ConflictsTotal.WithLabelValues("cancel", "storage").Inc()
		return nil, storeErr(err, errAppointmentNotFound)
	}

	s.metrics.TransitionsTotal.WithLabelValues(string(ap.Status)).Inc()
	s.log.Info("appointment canceled",
		zap.Uint("appointment_id", ap.ID),
		zap.Uint("by", sess.UserID),
	)
	s.dispatch(&sess, audit.ActionAppointmentCanceled, ap, map[string]any{
		"reason": ap.CancelReason,
	})

	return ap, nil
}

func actorName(sess account.Session) string {
	if sess.Username != "" {
		return sess.Username
	}
	return string(sess.Role)
}
