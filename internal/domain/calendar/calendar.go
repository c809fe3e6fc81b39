package calendar

import (
	"sort"
	"time"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/models"
)

const (
	ReasonConflict   = "Time slot conflicts with existing appointment"
	ReasonPast       = "Cannot book appointments in the past"
	ReasonNotWorking = "Barber is not working at this time"
)

type Entry struct {
	AppointmentID uint
	Slot          Slot
}

// Result is the answer to an availability query.
type Result struct {
	Available     bool
	Reason        string
	ConflictTime  *time.Time
	ConflictingID uint
}

// Calendar is the ordered set of active intervals of one barber.
type Calendar struct {
	BarberID uint
	entries  []Entry
}

// IsActive reports whether an appointment occupies its barber's calendar.
func IsActive(ap *models.Appointment) bool {
	if !ap.Active {
		return false
	}
	switch ap.Status {
	case models.StatusBooked, models.StatusCompleted:
		return true
	case models.StatusCanceled:
		return false
	}
	return false
}

// New builds the calendar of barberID from the given appointments,
// ignoring inactive ones and those of other barbers.
func New(barberID uint, appointments []models.Appointment) *Calendar {
	c := &Calendar{BarberID: barberID}
	for i := range appointments {
		ap := &appointments[i]
		if ap.BarberID != barberID || !IsActive(ap) {
			continue
		}
		c.entries = append(c.entries, Entry{
			AppointmentID: ap.ID,
			Slot:          NewSlot(ap.StartTime, ap.DurationMinutes),
		})
	}
	sort.Slice(c.entries, func(i, j int) bool {
		return c.entries[i].Slot.Start.Before(c.entries[j].Slot.Start)
	})
	return c
}

func (c *Calendar) Len() int { return len(c.entries) }

func (c *Calendar) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Check answers whether candidate is free, skipping excludeID (0 skips
// nothing). Entries never overlap each other, so they are ordered by end as
// well as by start and the first candidate neighbour is found by binary search.
func (c *Calendar) Check(candidate Slot, excludeID uint) Result {
	i := sort.Search(len(c.entries), func(i int) bool {
		return c.entries[i].Slot.End.After(candidate.Start)
	})

	for ; i < len(c.entries); i++ {
		e := c.entries[i]
		if !e.Slot.Start.Before(candidate.End) {
			break
		}
		if excludeID != 0 && e.AppointmentID == excludeID {
			continue
		}
		if e.Slot.Overlaps(candidate) {
			at := e.Slot.Start
			return Result{
				Available:     false,
				Reason:        ReasonConflict,
				ConflictTime:  &at,
				ConflictingID: e.AppointmentID,
			}
		}
	}

	return Result{Available: true}
}

// Overlapping returns every pair of entries that overlap. It is empty
// whenever the calendar invariant holds.
func (c *Calendar) Overlapping() [][2]Entry {
	var out [][2]Entry
	for i := 0; i < len(c.entries); i++ {
		for j := i + 1; j < len(c.entries); j++ {
			if !c.entries[j].Slot.Start.Before(c.entries[i].Slot.End) {
				break
			}
			out = append(out, [2]Entry{c.entries[i], c.entries[j]})
		}
	}
	return out
}
