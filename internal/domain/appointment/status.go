package appointment

import (
	"github.com/BruksfildServices01/barbershop-scheduler/internal/httperr"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/models"
)

// ===============================
// Appointment Status
// ===============================
//
//	booked → completed
//	booked → canceled
//	booked → booked (reschedule, new start only)
//
// completed and canceled are terminal.

// InitialStatus is the status of every newly booked appointment.
func InitialStatus() models.AppointmentStatus {
	return models.StatusBooked
}

// IsTerminal reports whether no transition may leave s.
func IsTerminal(s models.AppointmentStatus) bool {
	switch s {
	case models.StatusCompleted, models.StatusCanceled:
		return true
	case models.StatusBooked:
		return false
	}
	return true
}

// CanTransition is the full transition table.
func CanTransition(from, to models.AppointmentStatus) bool {
	switch from {
	case models.StatusBooked:
		switch to {
		case models.StatusBooked, models.StatusCompleted, models.StatusCanceled:
			return true
		}
		return false
	case models.StatusCompleted, models.StatusCanceled:
		return false
	}
	return false
}

// ===============================
// Validations
// ===============================

func CanCancel(current models.AppointmentStatus) error {
	switch current {
	case models.StatusBooked:
		return nil
	case models.StatusCanceled:
		return httperr.InvalidState("invalid_state", "Appointment is already canceled.")
	case models.StatusCompleted:
		return httperr.InvalidState("invalid_state", "Cannot cancel completed appointment.")
	}
	return httperr.InvalidState("invalid_state", "Unknown appointment status.")
}

func CanComplete(current models.AppointmentStatus) error {
	if !CanTransition(current, models.StatusCompleted) {
		return httperr.InvalidState(
			"invalid_state",
			"Only booked appointments can be completed. Current status: "+string(current)+".",
		)
	}
	return nil
}

func CanReschedule(current models.AppointmentStatus) error {
	if current != models.StatusBooked {
		return httperr.InvalidState("invalid_state", "Only booked appointments can be rescheduled.")
	}
	return nil
}
