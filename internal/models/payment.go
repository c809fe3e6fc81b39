package models

import "time"

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentRefunded  PaymentStatus = "refunded"
)

type Payment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint        `gorm:"not null;index" json:"appointment_id"`
	Appointment   Appointment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Amount   float64       `gorm:"type:numeric(10,2);not null" json:"amount"`
	Currency string        `gorm:"size:8;not null" json:"currency"`
	Status   PaymentStatus `gorm:"size:10;not null;default:'pending'" json:"status"`

	Provider    string     `gorm:"size:50;not null" json:"provider"`
	ProviderRef string     `gorm:"size:128" json:"provider_ref"`
	CheckoutURL string     `gorm:"size:512" json:"checkout_url"`
	PaidAt      *time.Time `json:"paid_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
