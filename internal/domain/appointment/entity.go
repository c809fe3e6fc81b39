package appointment

import (
	"fmt"
	"strings"
	"time"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/models"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/timezone"
)

const DefaultCancelReason = "No reason provided"

// ===============================
// Domain Actions
// ===============================

func Cancel(ap *models.Appointment, by string, reason string, now time.Time) error {
	if err := CanCancel(ap.Status); err != nil {
		return err
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = DefaultCancelReason
	}

	ap.Status = models.StatusCanceled
	ap.CanceledAt = &now
	ap.CancelReason = reason
	ap.Notes = appendNote(ap.Notes, fmt.Sprintf("[CANCELED by %s]: %s", by, reason))
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(ap.Status); err != nil {
		return err
	}

	ap.Status = models.StatusCompleted
	ap.CompletedAt = &now
	return nil
}

// Reschedule moves a booked appointment to newStart, keeping its id and
// duration. The availability of the new slot is checked by the caller.
func Reschedule(ap *models.Appointment, newStart time.Time) error {
	if err := CanReschedule(ap.Status); err != nil {
		return err
	}

	old := ap.StartTime
	ap.StartTime = newStart
	ap.EndTime = ap.End()
	ap.Notes = appendNote(ap.Notes, fmt.Sprintf(
		"[RESCHEDULED]: %s -> %s",
		old.Format(timezone.WireLayout),
		newStart.In(old.Location()).Format(timezone.WireLayout),
	))
	return nil
}

func appendNote(notes, line string) string {
	return strings.TrimSpace(notes + "\n" + line)
}
