package payment

import (
	"time"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/httperr"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/models"
)

func MarkPaid(p *models.Payment, now time.Time) error {
	if p.Status != models.PaymentPending {
		return httperr.InvalidState("invalid_state", "Only pending payments can be marked as paid.")
	}
	p.Status = models.PaymentCompleted
	p.PaidAt = &now
	return nil
}
