package calendar

import (
	"time"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/httperr"
)

const (
	MinDurationMinutes = 5
	MaxDurationMinutes = 8 * 60
)

// Slot is the half-open interval [Start, End).
type Slot struct {
	Start time.Time
	End   time.Time
}

func NewSlot(start time.Time, minutes int) Slot {
	return Slot{Start: start, End: start.Add(time.Duration(minutes) * time.Minute)}
}

// Overlaps reports whether the two slots share any instant. Touching slots
// (one ends exactly when the other starts) do not overlap.
func (s Slot) Overlaps(o Slot) bool {
	return s.Start.Before(o.End) && o.Start.Before(s.End)
}

func (s Slot) Minutes() int {
	return int(s.End.Sub(s.Start) / time.Minute)
}

// NormalizeDuration resolves the requested duration against the service
// default. Zero means "use the service duration".
func NormalizeDuration(requested, serviceDefault int) (int, error) {
	d := requested
	if d == 0 {
		d = serviceDefault
	}
	if d < MinDurationMinutes || d > MaxDurationMinutes {
		return 0, httperr.Validation(
			"invalid_duration",
			"Duration must be between 5 minutes and 8 hours.",
		)
	}
	return d, nil
}
