package memory

import (
	"context"
	"sort"
	"time"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/models"
)

func (s *Store) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.overlapsLocked(ap) {
		return domain.ErrSlotTaken
	}

	ap.ID = s.nextID()
	ap.EndTime = ap.End()
	if ap.Version == 0 {
		ap.Version = 1
	}
	stamp(&ap.CreatedAt, &ap.UpdatedAt, s.now())

	stored := *ap
	clearRelations(&stored)
	s.appointments[ap.ID] = stored

	s.populateLocked(ap)
	return nil
}

func (s *Store) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ap, ok := s.appointments[id]
	if !ok || !ap.Active {
		return nil, domain.ErrNotFound
	}
	s.populateLocked(&ap)
	return &ap, nil
}

func (s *Store) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.appointments[ap.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if current.Version != ap.Version {
		return domain.ErrStaleVersion
	}
	if s.overlapsLocked(ap) {
		return domain.ErrSlotTaken
	}

	ap.Version++
	ap.EndTime = ap.End()
	ap.UpdatedAt = s.now()

	stored := *ap
	clearRelations(&stored)
	s.appointments[ap.ID] = stored
	return nil
}

func (s *Store) ListActiveForBarber(_ context.Context, barberID uint, from, to time.Time) ([]models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Appointment
	for _, ap := range s.appointments {
		if ap.BarberID != barberID || !calendar.IsActive(&ap) {
			continue
		}
		if ap.StartTime.Before(to) && ap.End().After(from) {
			out = append(out, ap)
		}
	}
	sortByStart(out, appointment.OrderStartAsc)
	return out, nil
}

func (s *Store) ListAppointments(_ context.Context, q appointment.ListQuery) ([]models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.filterLocked(q)
	sortByStart(out, q.Order)
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	for i := range out {
		s.populateLocked(&out[i])
	}
	return out, nil
}

func (s *Store) CountByStatus(_ context.Context, q appointment.ListQuery) (appointment.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var st appointment.Stats
	for _, ap := range s.filterLocked(q) {
		st.Total++
		switch ap.Status {
		case models.StatusBooked:
			st.Booked++
		case models.StatusCompleted:
			st.Completed++
		case models.StatusCanceled:
			st.Canceled++
		}
	}
	return st, nil
}

func (s *Store) ListDueForCompletion(_ context.Context, cutoff time.Time, limit int) ([]models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Appointment
	for _, ap := range s.appointments {
		if ap.Active && ap.Status == models.StatusBooked && !ap.End().After(cutoff) {
			out = append(out, ap)
		}
	}
	sortByStart(out, appointment.OrderStartAsc)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// --------------------------------------------------
// helpers
// --------------------------------------------------

func (s *Store) filterLocked(q appointment.ListQuery) []models.Appointment {
	var out []models.Appointment
	for _, ap := range s.appointments {
		if !ap.Active {
			continue
		}
		if q.ClientID != nil && ap.ClientID != *q.ClientID {
			continue
		}
		if q.BarberID != nil && ap.BarberID != *q.BarberID {
			continue
		}
		if len(q.Statuses) > 0 && !hasStatus(q.Statuses, ap.Status) {
			continue
		}
		if q.StartFrom != nil && ap.StartTime.Before(*q.StartFrom) {
			continue
		}
		if q.StartTo != nil && !ap.StartTime.Before(*q.StartTo) {
			continue
		}
		if q.HistoryAt != nil && !ap.StartTime.Before(*q.HistoryAt) && ap.Status != models.StatusCanceled {
			continue
		}
		out = append(out, ap)
	}
	return out
}

// overlapsLocked mirrors the postgres exclusion constraint.
func (s *Store) overlapsLocked(ap *models.Appointment) bool {
	if !calendar.IsActive(ap) {
		return false
	}
	slot := calendar.NewSlot(ap.StartTime, ap.DurationMinutes)
	for id, other := range s.appointments {
		if id == ap.ID || other.BarberID != ap.BarberID || !calendar.IsActive(&other) {
			continue
		}
		if slot.Overlaps(calendar.NewSlot(other.StartTime, other.DurationMinutes)) {
			return true
		}
	}
	return false
}

func (s *Store) populateLocked(ap *models.Appointment) {
	ap.Client = s.users[ap.ClientID]
	ap.Barber = s.users[ap.BarberID]
	ap.Service = s.services[ap.ServiceID]
}

func clearRelations(ap *models.Appointment) {
	ap.Client = models.User{}
	ap.Barber = models.User{}
	ap.Service = models.Service{}
}

func hasStatus(list []models.AppointmentStatus, s models.AppointmentStatus) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

func sortByStart(list []models.Appointment, order appointment.Order) {
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a.StartTime.Equal(b.StartTime) {
			return a.ID < b.ID
		}
		if order == appointment.OrderStartDesc {
			return a.StartTime.After(b.StartTime)
		}
		return a.StartTime.Before(b.StartTime)
	})
}
