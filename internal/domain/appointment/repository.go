package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/models"
)

type Order int

const (
	OrderStartAsc Order = iota
	OrderStartDesc
)

// ListQuery filters appointment listings. Nil fields do not filter.
type ListQuery struct {
	ClientID  *uint
	BarberID  *uint
	Statuses  []models.AppointmentStatus
	StartFrom *time.Time
	StartTo   *time.Time

	// HistoryAt keeps rows that started before it or were canceled.
	HistoryAt *time.Time

	Order Order
	Limit int
}

type Stats struct {
	Total     int64 `json:"total"`
	Booked    int64 `json:"booked"`
	Completed int64 `json:"completed"`
	Canceled  int64 `json:"canceled"`
}

type Repository interface {
	// -------- References --------
	GetUser(ctx context.Context, id uint) (*models.User, error)
	GetService(ctx context.Context, id uint) (*models.Service, error)
	ListWorkingHours(ctx context.Context, barberID uint) ([]models.WorkingHours, error)

	// -------- Calendar --------

	// ListActiveForBarber returns the non-canceled, active appointments of
	// barberID whose slot intersects [from, to).
	ListActiveForBarber(ctx context.Context, barberID uint, from, to time.Time) ([]models.Appointment, error)

	// -------- Appointment --------
	CreateAppointment(ctx context.Context, ap *models.Appointment) error
	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)

	// UpdateAppointment persists ap if its stored version still equals
	// ap.Version, then increments ap.Version. Otherwise domain.ErrStaleVersion.
	UpdateAppointment(ctx context.Context, ap *models.Appointment) error

	ListAppointments(ctx context.Context, q ListQuery) ([]models.Appointment, error)
	CountByStatus(ctx context.Context, q ListQuery) (Stats, error)

	// ListDueForCompletion returns booked appointments that ended before cutoff.
	ListDueForCompletion(ctx context.Context, cutoff time.Time, limit int) ([]models.Appointment, error)
}
