package account

import (
	"context"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/audit"
	domainacc "github.com/BruksfildServices01/barbershop-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/httperr"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/models"
)

var errBarbersOnly = httperr.Forbidden("barbers_only", "Only barbers have a working schedule.")

func (s *Service) Schedule(ctx context.Context, sess domainacc.Session) ([]models.WorkingHours, error) {
	if !sess.IsBarber() {
		return nil, errBarbersOnly
	}
	return s.repo.ListWorkingHours(ctx, sess.UserID)
}

// ReplaceSchedule overwrites the caller's weekly schedule. An empty list
// removes every restriction.
func (s *Service) ReplaceSchedule(ctx context.Context, sess domainacc.Session, days []models.WorkingHours) ([]models.WorkingHours, error) {
	if !sess.IsBarber() {
		return nil, errBarbersOnly
	}

	seen := make(map[int]bool, len(days))
	for _, d := range days {
		if err := calendar.ValidateWorkingDay(d); err != nil {
			return nil, httperr.Validation("invalid_schedule", err.Error())
		}
		if seen[d.Weekday] {
			return nil, httperr.Validation("invalid_schedule", "Each weekday may appear only once.")
		}
		seen[d.Weekday] = true
	}

	if err := s.repo.ReplaceWorkingHours(ctx, sess.UserID, days); err != nil {
		return nil, err
	}

	s.audit.Dispatch(audit.Event{
		UserID:   audit.Ptr(sess.UserID),
		Action:   audit.ActionScheduleChanged,
		Entity:   "working_hours",
		Metadata: map[string]any{"days": len(days)},
	})
	return s.repo.ListWorkingHours(ctx, sess.UserID)
}
