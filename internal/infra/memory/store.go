// Package memory is a process-local implementation of every repository.
// It backs the test suites and STORE=memory deployments.
package memory

import (
	"sync"
	"time"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/audit"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain/payment"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain/rating"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/models"
)

type ratingKey struct {
	appointmentID uint
	raterID       uint
}

type Store struct {
	mu sync.RWMutex

	seq uint

	users        map[uint]models.User
	stats        map[uint]models.BarberStats
	services     map[uint]models.Service
	workingHours map[uint][]models.WorkingHours
	appointments map[uint]models.Appointment
	ratings      map[uint]models.Rating
	ratingKeys   map[ratingKey]uint
	payments     map[uint]models.Payment
	auditLogs    []models.AuditLog

	now func() time.Time
}

func New() *Store {
	return &Store{
		users:        make(map[uint]models.User),
		stats:        make(map[uint]models.BarberStats),
		services:     make(map[uint]models.Service),
		workingHours: make(map[uint][]models.WorkingHours),
		appointments: make(map[uint]models.Appointment),
		ratings:      make(map[uint]models.Rating),
		ratingKeys:   make(map[ratingKey]uint),
		payments:     make(map[uint]models.Payment),
		now:          time.Now,
	}
}

func (s *Store) nextID() uint {
	s.seq++
	return s.seq
}

func stamp(created, updated *time.Time, now time.Time) {
	if created != nil && created.IsZero() {
		*created = now
	}
	if updated != nil {
		*updated = now
	}
}

var (
	_ appointment.Repository = (*Store)(nil)
	_ rating.Repository      = (*Store)(nil)
	_ account.Repository     = (*Store)(nil)
	_ catalog.Repository     = (*Store)(nil)
	_ payment.Repository     = (*Store)(nil)
	_ audit.Store            = (*Store)(nil)
)
