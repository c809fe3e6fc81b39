package dto

import (
	"time"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/models"
)

type PaymentDTO struct {
	ID          uint                 `json:"id"`
	Appointment uint                 `json:"appointment"`
	Amount      string               `json:"amount"`
	Currency    string               `json:"currency"`
	Status      models.PaymentStatus `json:"status"`
	PaidAt      *string              `json:"paid_at"`
	Provider    string               `json:"provider"`
	ProviderRef string               `json:"provider_ref,omitempty"`
	CheckoutURL string               `json:"checkout_url,omitempty"`
}

func Payment(p models.Payment, loc *time.Location) PaymentDTO {
	return PaymentDTO{
		ID:          p.ID,
		Appointment: p.AppointmentID,
		Amount:      money(p.Amount),
		Currency:    p.Currency,
		Status:      p.Status,
		PaidAt:      timePtr(p.PaidAt, loc),
		Provider:    p.Provider,
		ProviderRef: p.ProviderRef,
		CheckoutURL: p.CheckoutURL,
	}
}

func Payments(in []models.Payment, loc *time.Location) []PaymentDTO {
	out := make([]PaymentDTO, len(in))
	for i, p := range in {
		out[i] = Payment(p, loc)
	}
	return out
}
