package scheduling

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/audit"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/httperr"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/models"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type BookInput struct {
	// ClientID is honoured for admins only; everyone else books for themselves.
	ClientID uint `json:"client_id"`

	BarberID        uint      `json:"barber_id" validate:"required"`
	ServiceID       uint      `json:"service_id" validate:"required"`
	Start           time.Time `json:"appointment_datetime" validate:"required"`
	DurationMinutes int       `json:"duration_minutes" validate:"gte=0"`
	Notes           string    `json:"notes" validate:"max=1000"`
}

// ======================================================
// EXECUTE
// ======================================================

func (s *Service) Book(ctx context.Context, sess account.Session, in BookInput) (*models.Appointment, error) {
	if err := validators.Struct(in); err != nil {
		return nil, err
	}

	clientID := sess.UserID
	if sess.IsAdmin() && in.ClientID != 0 {
		clientID = in.ClientID
	}

	// --------------------------------------------------
	// References
	// --------------------------------------------------
	client, err := s.repo.GetUser(ctx, clientID)
	if err != nil {
		return nil, storeErr(err, errClientNotFound)
	}
	if client.Role == models.RoleBarber {
		return nil, httperr.Validation("invalid_client", "Barbers cannot book appointments as clients.")
	}

	if _, err := s.getBarber(ctx, in.BarberID); err != nil {
		return nil, err
	}

	svc, err := s.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, storeErr(err, errServiceNotFound)
	}
	if !svc.Active {
		return nil, httperr.Validation("service_inactive", "Selected service is not available.")
	}

	duration, err := calendar.NormalizeDuration(in.DurationMinutes, svc.DurationMinutes)
	if err != nil {
		return nil, err
	}

	if !in.Start.After(s.clock.Now()) {
		return nil, errPastStart
	}

	// --------------------------------------------------
	// Check and commit under the barber lock
	// --------------------------------------------------
	unlock, err := s.lockBarber(ctx, in.BarberID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	slot := calendar.NewSlot(in.Start, duration)
	res, err := s.availability(ctx, in.BarberID, slot, 0)
	if err != nil {
		return nil, err
	}
	if !res.Available {
		s.metrics.ConflictsTotal.WithLabelValues("book", conflictCause(res)).Inc()
		return nil, unavailable(res)
	}

	ap := &models.Appointment{
		ClientID:        clientID,
		BarberID:        in.BarberID,
		ServiceID:       svc.ID,
		StartTime:       in.Start,
		EndTime:         slot.End,
		DurationMinutes: duration,
		Status:          appointment.InitialStatus(),
		Notes:           strings.TrimSpace(in.Notes),
		Active:          true,
		Version:         1,
	}
	if err := s.repo.CreateAppointment(ctx, ap); err != nil {
		s.metrics.ConflictsTotal.WithLabelValues("book", "storage").Inc()
		return nil, storeErr(err, errAppointmentNotFound)
	}
	unlock()

	s.metrics.BookingsTotal.Inc()
	s.metrics.TransitionsTotal.WithLabelValues(string(ap.Status)).Inc()
	s.log.Info("appointment booked",
		zap.Uint("appointment_id", ap.ID),
		zap.Uint("barber_id", ap.BarberID),
		zap.Uint("client_id", ap.ClientID),
		zap.Time("start", ap.StartTime),
		zap.Int("duration_minutes", ap.DurationMinutes),
	)
	s.dispatch(&sess, audit.ActionAppointmentBooked, ap, map[string]any{
		"barber_id":  ap.BarberID,
		"service_id": ap.ServiceID,
		"start":      ap.StartTime,
	})

	return ap, nil
}

func conflictCause(res calendar.Result) string {
	if res.Reason == calendar.ReasonNotWorking {
		return "not_working"
	}
	return "overlap"
}
