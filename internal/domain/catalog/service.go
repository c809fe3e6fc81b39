package catalog

import (
	"strings"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/httperr"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/models"
)

// Validate checks the catalog rules for a service entry.
func Validate(s *models.Service) error {
	if strings.TrimSpace(s.Name) == "" {
		return httperr.Validation("invalid_name", "Name is required.")
	}
	if s.DurationMinutes < calendar.MinDurationMinutes {
		return httperr.Validation("invalid_duration", "Duration must be at least 5 minutes.")
	}
	if s.DurationMinutes > calendar.MaxDurationMinutes {
		return httperr.Validation("invalid_duration", "Duration cannot exceed 8 hours.")
	}
	if s.Price < 0 {
		return httperr.Validation("invalid_price", "Price cannot be negative.")
	}
	return nil
}
