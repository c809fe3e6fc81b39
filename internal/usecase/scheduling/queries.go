package scheduling

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/httperr"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/models"
)

type ListFilter struct {
	Status   models.AppointmentStatus
	BarberID *uint
	From     *time.Time
	To       *time.Time
}

func (s *Service) Get(ctx context.Context, sess account.Session, id uint) (*models.Appointment, error) {
	ap, err := s.repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, storeErr(err, errAppointmentNotFound)
	}
	if !participates(sess, ap) {
		return nil, errAppointmentNotFound
	}
	return ap, nil
}

// List returns the caller's appointments, newest first.
func (s *Service) List(ctx context.Context, sess account.Session, f ListFilter) ([]models.Appointment, error) {
	q := appointment.ListQuery{
		BarberID:  f.BarberID,
		StartFrom: f.From,
		StartTo:   f.To,
		Order:     appointment.OrderStartDesc,
	}
	if f.Status != "" {
		if !f.Status.Valid() {
			return nil, httperr.Validation("invalid_status", "Unknown appointment status.")
		}
		q.Statuses = []models.AppointmentStatus{f.Status}
	}
	scope(sess, &q)
	return s.repo.ListAppointments(ctx, q)
}

// Upcoming lists non-canceled appointments starting now or later,
// soonest first.
func (s *Service) Upcoming(ctx context.Context, sess account.Session) ([]models.Appointment, error) {
	now := s.clock.Now()
	q := appointment.ListQuery{
		Statuses:  []models.AppointmentStatus{models.StatusBooked, models.StatusCompleted},
		StartFrom: &now,
		Order:     appointment.OrderStartAsc,
		Limit:     UpcomingLimit,
	}
	ownScope(sess, &q)
	return s.repo.ListAppointments(ctx, q)
}

// History is the complement of Upcoming: everything that already started
// or was canceled, latest first.
func (s *Service) History(ctx context.Context, sess account.Session) ([]models.Appointment, error) {
	now := s.clock.Now()
	q := appointment.ListQuery{
		HistoryAt: &now,
		Order:     appointment.OrderStartDesc,
	}
	ownScope(sess, &q)
	return s.repo.ListAppointments(ctx, q)
}

func (s *Service) Stats(ctx context.Context, sess account.Session) (appointment.Stats, error) {
	var q appointment.ListQuery
	scope(sess, &q)
	return s.repo.CountByStatus(ctx, q)
}
