package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// References
// --------------------------------------------------

func (r *AppointmentGormRepository) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return findUser(ctx, r.db, id)
}

func (r *AppointmentGormRepository) GetService(ctx context.Context, id uint) (*models.Service, error) {
	return findService(ctx, r.db, id)
}

func (r *AppointmentGormRepository) ListWorkingHours(ctx context.Context, barberID uint) ([]models.WorkingHours, error) {
	return listWorkingHours(ctx, r.db, barberID)
}

// --------------------------------------------------
// Calendar
// --------------------------------------------------

func (r *AppointmentGormRepository) ListActiveForBarber(
	ctx context.Context,
	barberID uint,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "barber_id", "start_time", "end_time", "duration_minutes", "status", "active").
		Where(
			"barber_id = ? AND active AND status <> ? AND start_time < ? AND end_time > ?",
			barberID, models.StatusCanceled, to, from,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	ap.EndTime = ap.End()
	if ap.Version == 0 {
		ap.Version = 1
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(ap).Error; err != nil {
		return mapErr(err)
	}

	full, err := findAppointment(ctx, r.db, ap.ID)
	if err != nil {
		return err
	}
	*ap = *full
	return nil
}

func (r *AppointmentGormRepository) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	return findAppointment(ctx, r.db, id)
}

// UpdateAppointment is a compare-and-swap on the version column.
func (r *AppointmentGormRepository) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	now := time.Now()
	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND version = ?", ap.ID, ap.Version).
		Updates(map[string]any{
			"start_time":       ap.StartTime,
			"end_time":         ap.End(),
			"duration_minutes": ap.DurationMinutes,
			"status":           ap.Status,
			"notes":            ap.Notes,
			"cancel_reason":    ap.CancelReason,
			"canceled_at":      ap.CanceledAt,
			"completed_at":     ap.CompletedAt,
			"active":           ap.Active,
			"version":          ap.Version + 1,
			"updated_at":       now,
		})
	if res.Error != nil {
		return mapErr(res.Error)
	}

	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&models.Appointment{}).
			Where("id = ?", ap.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domain.ErrNotFound
		}
		return domain.ErrStaleVersion
	}

	ap.Version++
	ap.EndTime = ap.End()
	ap.UpdatedAt = now
	return nil
}

func (r *AppointmentGormRepository) ListAppointments(ctx context.Context, q appointment.ListQuery) ([]models.Appointment, error) {
	order := "start_time ASC, id ASC"
	if q.Order == appointment.OrderStartDesc {
		order = "start_time DESC, id DESC"
	}

	tx := r.filter(ctx, q).
		Preload("Client").
		Preload("Barber").
		Preload("Service").
		Order(order)
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	var apps []models.Appointment
	if err := tx.Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) CountByStatus(ctx context.Context, q appointment.ListQuery) (appointment.Stats, error) {
	var rows []struct {
		Status models.AppointmentStatus
		N      int64
	}
	if err := r.filter(ctx, q).
		Select("status, COUNT(*) AS n").
		Group("status").
		Scan(&rows).Error; err != nil {
		return appointment.Stats{}, err
	}

	var st appointment.Stats
	for _, row := range rows {
		st.Total += row.N
		switch row.Status {
		case models.StatusBooked:
			st.Booked = row.N
		case models.StatusCompleted:
			st.Completed = row.N
		case models.StatusCanceled:
			st.Canceled = row.N
		}
	}
	return st, nil
}

func (r *AppointmentGormRepository) ListDueForCompletion(ctx context.Context, cutoff time.Time, limit int) ([]models.Appointment, error) {
	tx := r.db.WithContext(ctx).
		Where("active AND status = ? AND end_time <= ?", models.StatusBooked, cutoff).
		Order("start_time ASC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}

	var apps []models.Appointment
	if err := tx.Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) filter(ctx context.Context, q appointment.ListQuery) *gorm.DB {
	tx := r.db.WithContext(ctx).Model(&models.Appointment{}).Where("active = ?", true)

	if q.ClientID != nil {
		tx = tx.Where("client_id = ?", *q.ClientID)
	}
	if q.BarberID != nil {
		tx = tx.Where("barber_id = ?", *q.BarberID)
	}
	if len(q.Statuses) > 0 {
		tx = tx.Where("status IN ?", q.Statuses)
	}
	if q.StartFrom != nil {
		tx = tx.Where("start_time >= ?", *q.StartFrom)
	}
	if q.StartTo != nil {
		tx = tx.Where("start_time < ?", *q.StartTo)
	}
	if q.HistoryAt != nil {
		tx = tx.Where("(start_time < ? OR status = ?)", *q.HistoryAt, models.StatusCanceled)
	}
	return tx
}

// Compile-time check
var _ appointment.Repository = (*AppointmentGormRepository)(nil)
