package models

import "time"

type AppointmentStatus string

const (
	StatusBooked    AppointmentStatus = "booked"
	StatusCompleted AppointmentStatus = "completed"
	StatusCanceled  AppointmentStatus = "canceled"
)

// Valid reports whether s is one of the known statuses.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusBooked, StatusCompleted, StatusCanceled:
		return true
	}
	return false
}

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint `gorm:"not null;index" json:"client_id"`
	Client   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"client"`

	BarberID uint `gorm:"not null;index:idx_appointments_barber_start,priority:1" json:"barber_id"`
	Barber   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"barber"`

	ServiceID uint    `gorm:"not null" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"service"`

	StartTime       time.Time `gorm:"not null;index:idx_appointments_barber_start,priority:2" json:"start_time"`
	EndTime         time.Time `gorm:"not null" json:"end_time"`
	DurationMinutes int       `gorm:"not null" json:"duration_minutes"`

	Status AppointmentStatus `gorm:"size:10;not null;default:'booked';index" json:"status"`

	Notes        string     `gorm:"type:text" json:"notes"`
	CancelReason string     `gorm:"size:255" json:"cancel_reason"`
	CanceledAt   *time.Time `json:"canceled_at"`
	CompletedAt  *time.Time `json:"completed_at"`

	// Soft-delete flag; inactive rows are invisible to every query.
	Active  bool `gorm:"not null;default:true" json:"active"`
	Version int  `gorm:"not null;default:1" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// End is start + duration, independent of the stored EndTime column.
func (a *Appointment) End() time.Time {
	return a.StartTime.Add(time.Duration(a.DurationMinutes) * time.Minute)
}
