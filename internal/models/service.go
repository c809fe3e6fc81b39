package models

import "time"

// Service is an entry of the barbershop catalog.
type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name            string  `gorm:"size:120;not null" json:"name"`
	Description     string  `gorm:"type:text" json:"description"`
	DurationMinutes int     `gorm:"not null" json:"duration_minutes"`
	Price           float64 `gorm:"type:numeric(10,2);not null" json:"price"`
	Active          bool    `gorm:"not null;default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
