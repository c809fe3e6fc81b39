package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain/payment"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/models"
)

type PaymentGormRepository struct {
	db *gorm.DB
}

func NewPaymentGormRepository(db *gorm.DB) *PaymentGormRepository {
	return &PaymentGormRepository{db: db}
}

func (r *PaymentGormRepository) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	return findAppointment(ctx, r.db, id)
}

func (r *PaymentGormRepository) CreatePayment(ctx context.Context, p *models.Payment) error {
	return mapErr(r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error)
}

// GetPayment locks nothing; MarkPaid only moves pending → completed, so a
// lost race ends in a second identical write.
func (r *PaymentGormRepository) GetPayment(ctx context.Context, id uint) (*models.Payment, error) {
	var p models.Payment
	if err := r.db.WithContext(ctx).Preload("Appointment").First(&p, id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &p, nil
}

func (r *PaymentGormRepository) UpdatePayment(ctx context.Context, p *models.Payment) error {
	return mapErr(r.db.WithContext(ctx).Omit(clause.Associations).Save(p).Error)
}

func (r *PaymentGormRepository) ListPayments(ctx context.Context, q payment.ListQuery) ([]models.Payment, error) {
	tx := r.db.WithContext(ctx).
		Joins("Appointment").
		Order("payments.id DESC")
	if q.ClientID != nil {
		tx = tx.Where("\"Appointment\".client_id = ?", *q.ClientID)
	}
	if q.BarberID != nil {
		tx = tx.Where("\"Appointment\".barber_id = ?", *q.BarberID)
	}

	var out []models.Payment
	err := tx.Find(&out).Error
	return out, err
}

func (r *PaymentGormRepository) PaymentStats(ctx context.Context, q payment.ListQuery) (payment.Stats, error) {
	tx := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Joins("JOIN appointments ON appointments.id = payments.appointment_id")
	if q.ClientID != nil {
		tx = tx.Where("appointments.client_id = ?", *q.ClientID)
	}
	if q.BarberID != nil {
		tx = tx.Where("appointments.barber_id = ?", *q.BarberID)
	}

	var st payment.Stats
	err := tx.Select(
		"COALESCE(SUM(payments.amount), 0) AS total_amount, "+
			"COUNT(payments.id) AS total_payments, "+
			"COUNT(payments.id) FILTER (WHERE payments.status = ?) AS pending, "+
			"COUNT(payments.id) FILTER (WHERE payments.status = ?) AS completed, "+
			"COUNT(payments.id) FILTER (WHERE payments.status = ?) AS refunded",
		models.PaymentPending, models.PaymentCompleted, models.PaymentRefunded,
	).Scan(&st).Error
	return st, err
}

var _ payment.Repository = (*PaymentGormRepository)(nil)
