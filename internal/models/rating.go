package models

import "time"

type Rating struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint `gorm:"not null;uniqueIndex:idx_ratings_appointment_rater,priority:1" json:"appointment_id"`
	RaterID       uint `gorm:"not null;uniqueIndex:idx_ratings_appointment_rater,priority:2;index" json:"rater_id"`
	Rater         User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	BarberID      uint `gorm:"not null;index" json:"barber_id"`

	Score   int    `gorm:"not null" json:"score"`
	Comment string `gorm:"type:text" json:"comment"`

	CreatedAt time.Time `json:"created_at"`
}
