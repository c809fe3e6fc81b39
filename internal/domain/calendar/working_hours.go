package calendar

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/models"
)

// WithinWorkingHours checks a slot against a barber's weekly schedule,
// lunch break included. A barber with no schedule rows accepts any slot.
func WithinWorkingHours(hours []models.WorkingHours, slot Slot) bool {
	if len(hours) == 0 {
		return true
	}

	start := slot.Start
	weekday := int(start.Weekday())
	loc := start.Location()

	var wh *models.WorkingHours
	for i := range hours {
		if hours[i].Weekday == weekday {
			wh = &hours[i]
			break
		}
	}
	if wh == nil || !wh.Active || wh.StartTime == "" || wh.EndTime == "" {
		return false
	}

	parseHM := func(hm string) (time.Time, bool) {
		t, err := time.Parse("15:04", hm)
		if err != nil {
			return time.Time{}, false
		}
		return time.Date(
			start.Year(), start.Month(), start.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		), true
	}

	workStart, ok1 := parseHM(wh.StartTime)
	workEnd, ok2 := parseHM(wh.EndTime)
	if !ok1 || !ok2 {
		return false
	}

	if slot.Start.Before(workStart) || slot.End.After(workEnd) {
		return false
	}

	if wh.LunchStart != "" && wh.LunchEnd != "" {
		lunchStart, ok1 := parseHM(wh.LunchStart)
		lunchEnd, ok2 := parseHM(wh.LunchEnd)
		if ok1 && ok2 && slot.Overlaps(Slot{Start: lunchStart, End: lunchEnd}) {
			return false
		}
	}

	return true
}

// ValidateWorkingDay checks the "HH:MM" fields of one schedule row.
func ValidateWorkingDay(wh models.WorkingHours) error {
	if wh.Weekday < 0 || wh.Weekday > 6 {
		return fmt.Errorf("weekday %d out of range", wh.Weekday)
	}
	if !wh.Active {
		return nil
	}

	start, err := time.Parse("15:04", wh.StartTime)
	if err != nil {
		return fmt.Errorf("start_time %q: %w", wh.StartTime, err)
	}
	end, err := time.Parse("15:04", wh.EndTime)
	if err != nil {
		return fmt.Errorf("end_time %q: %w", wh.EndTime, err)
	}
	if !end.After(start) {
		return fmt.Errorf("end_time must be after start_time")
	}

	if wh.LunchStart == "" && wh.LunchEnd == "" {
		return nil
	}
	ls, err := time.Parse("15:04", wh.LunchStart)
	if err != nil {
		return fmt.Errorf("lunch_start %q: %w", wh.LunchStart, err)
	}
	le, err := time.Parse("15:04", wh.LunchEnd)
	if err != nil {
		return fmt.Errorf("lunch_end %q: %w", wh.LunchEnd, err)
	}
	if !le.After(ls) || ls.Before(start) || le.After(end) {
		return fmt.Errorf("lunch break must lie inside the working day")
	}
	return nil
}
