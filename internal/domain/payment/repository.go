package payment

import (
	"context"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/models"
)

type ListQuery struct {
	ClientID *uint
	BarberID *uint
}

// Stats aggregates payments by status. TotalAmount sums every payment in
// scope regardless of status.
type Stats struct {
	TotalAmount   float64 `json:"total_amount"`
	TotalPayments int64   `json:"total_payments"`
	Pending       int64   `json:"pending"`
	Completed     int64   `json:"completed"`
	Refunded      int64   `json:"refunded"`
}

type Repository interface {
	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)

	CreatePayment(ctx context.Context, p *models.Payment) error
	GetPayment(ctx context.Context, id uint) (*models.Payment, error)
	UpdatePayment(ctx context.Context, p *models.Payment) error
	ListPayments(ctx context.Context, q ListQuery) ([]models.Payment, error)
	PaymentStats(ctx context.Context, q ListQuery) (Stats, error)
}
