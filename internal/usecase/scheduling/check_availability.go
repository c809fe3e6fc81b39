package scheduling

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/validators"
)

type CheckAvailabilityInput struct {
	BarberID        uint      `json:"barber_id" validate:"required"`
	Start           time.Time `json:"appointment_datetime" validate:"required"`
	DurationMinutes int       `json:"duration_minutes" validate:"gte=0"`

	// ExcludeAppointmentID lets a reschedule ignore its own slot.
	ExcludeAppointmentID uint `json:"exclude_appointment_id"`
}

// CheckAvailability is a pure read and may be called at any rate. A past
// start is reported as unavailable, not as an error.
func (s *Service) CheckAvailability(ctx context.Context, in CheckAvailabilityInput) (appointment.Availability, error) {
	if err := validators.Struct(in); err != nil {
		return appointment.Availability{}, err
	}

	duration := in.DurationMinutes
	if duration == 0 {
		duration = DefaultDurationMinutes
	}
	duration, err := calendar.NormalizeDuration(duration, DefaultDurationMinutes)
	if err != nil {
		return appointment.Availability{}, err
	}

	if _, err := s.getBarber(ctx, in.BarberID); err != nil {
		return appointment.Availability{}, err
	}

	out := appointment.Availability{BarberID: in.BarberID, Start: in.Start}

	if !in.Start.After(s.clock.Now()) {
		out.Reason = calendar.ReasonPast
		return out, nil
	}

	res, err := s.availability(ctx, in.BarberID, calendar.NewSlot(in.Start, duration), in.ExcludeAppointmentID)
	if err != nil {
		return appointment.Availability{}, err
	}

	out.Available = res.Available
	out.Reason = res.Reason
	out.ConflictTime = res.ConflictTime
	return out, nil
}
