// Package scheduling is the entry point for every appointment operation:
// availability, booking, rescheduling, cancellation, completion and the
// per-caller listings.
package scheduling

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/audit"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/httperr"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/lock"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/metrics"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/models"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/timezone"
)

const (
	DefaultDurationMinutes = 30
	UpcomingLimit          = 10
)

// ======================================================
// DEPENDENCIES
// ======================================================

type Deps struct {
	Repo     appointment.Repository
	Locker   lock.Locker
	Clock    calendar.Clock
	Audit    *audit.Dispatcher
	Metrics  *metrics.Collector
	Log      *zap.Logger
	Location *time.Location
}

type Service struct {
	repo    appointment.Repository
	locker  lock.Locker
	clock   calendar.Clock
	audit   *audit.Dispatcher
	metrics *metrics.Collector
	log     *zap.Logger
	loc     *time.Location
}

func New(d Deps) *Service {
	s := &Service{
		repo:    d.Repo,
		locker:  d.Locker,
		clock:   d.Clock,
		audit:   d.Audit,
		metrics: d.Metrics,
		log:     d.Log,
		loc:     d.Location,
	}
	if s.locker == nil {
		s.locker = lock.NewLocal()
	}
	if s.clock == nil {
		s.clock = calendar.RealClock{}
	}
	if s.metrics == nil {
		s.metrics = metrics.NewCollector()
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.loc == nil {
		s.loc = timezone.Location("")
	}
	s.log = s.log.With(zap.String("component", "scheduling"))
	return s
}

// ======================================================
// ERRORS
// ======================================================

var (
	errAppointmentNotFound = httperr.NotFoundErr("appointment_not_found", "Appointment not found.")
	errBarberNotFound      = httperr.NotFoundErr("barber_not_found", "Barber not found.")
	errClientNotFound      = httperr.NotFoundErr("client_not_found", "Client not found.")
	errServiceNotFound     = httperr.NotFoundErr("service_not_found", "Service not found.")
	errStale               = httperr.Conflict("concurrent_modification", "Appointment was modified concurrently.")
	errSlotTaken           = httperr.Conflict("time_conflict", calendar.ReasonConflict+".")
	errForbidden           = httperr.Forbidden("forbidden", "You are not allowed to perform this action.")
	errPastStart           = httperr.Validation("past_start", calendar.ReasonPast+".")
)

// storeErr maps repository sentinels onto the business taxonomy.
func storeErr(err error, notFound *httperr.Error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrNotFound):
		return notFound
	case errors.Is(err, domain.ErrStaleVersion):
		return errStale
	case errors.Is(err, domain.ErrSlotTaken):
		return errSlotTaken
	}
	return err
}

// ======================================================
// HELPERS
// ======================================================

// lockBarber takes the barber's exclusive lock and records the wait.
func (s *Service) lockBarber(ctx context.Context, barberID uint) (lock.Unlock, error) {
	started := time.Now()
	unlock, err := s.locker.Lock(ctx, lock.BarberKey(barberID))
	s.metrics.LockWait.Observe(time.Since(started).Seconds())
	if err != nil {
		if errors.Is(err, lock.ErrNotAcquired) {
			return nil, httperr.Conflict("barber_busy", "Another booking for this barber is in progress, please retry.")
		}
		return nil, err
	}
	return unlock, nil
}

// availability answers whether slot is free for barberID. Callers that
// intend to write must hold the barber lock.
func (s *Service) availability(ctx context.Context, barberID uint, slot calendar.Slot, excludeID uint) (calendar.Result, error) {
	hours, err := s.repo.ListWorkingHours(ctx, barberID)
	if err != nil {
		return calendar.Result{}, err
	}
	local := calendar.Slot{Start: slot.Start.In(s.loc), End: slot.End.In(s.loc)}
	if !calendar.WithinWorkingHours(hours, local) {
		return calendar.Result{Available: false, Reason: calendar.ReasonNotWorking}, nil
	}

	existing, err := s.repo.ListActiveForBarber(ctx, barberID, slot.Start, slot.End)
	if err != nil {
		return calendar.Result{}, err
	}
	return calendar.New(barberID, existing).Check(slot, excludeID), nil
}

func unavailable(res calendar.Result) error {
	if res.Reason == calendar.ReasonNotWorking {
		return httperr.Conflict("outside_working_hours", calendar.ReasonNotWorking+".")
	}
	return errSlotTaken
}

func (s *Service) getBarber(ctx context.Context, id uint) (*models.User, error) {
	u, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, storeErr(err, errBarberNotFound)
	}
	if u.Role != models.RoleBarber || !u.Active {
		return nil, httperr.Validation("invalid_barber", "Selected user is not a barber.")
	}
	return u, nil
}

// scope restricts a listing to what the caller may see.
func scope(sess account.Session, q *appointment.ListQuery) {
	switch sess.Role {
	case models.RoleAdmin:
	case models.RoleBarber:
		id := sess.UserID
		q.BarberID = &id
	default:
		id := sess.UserID
		q.ClientID = &id
	}
}

// ownScope restricts a listing to the caller's own calendar: the barber's
// chair for barbers, the appointments they booked for everyone else.
func ownScope(sess account.Session, q *appointment.ListQuery) {
	id := sess.UserID
	if sess.Role == models.RoleBarber {
		q.BarberID = &id
		return
	}
	q.ClientID = &id
}

func participates(sess account.Session, ap *models.Appointment) bool {
	return sess.IsAdmin() || ap.ClientID == sess.UserID || ap.BarberID == sess.UserID
}

func (s *Service) dispatch(sess *account.Session, action string, ap *models.Appointment, meta map[string]any) {
	var userID *uint
	if sess != nil {
		userID = audit.Ptr(sess.UserID)
	}
	s.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   action,
		Entity:   "appointment",
		EntityID: audit.Ptr(ap.ID),
		Metadata: meta,
	})
}
