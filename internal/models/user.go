package models

import "time"

type Role string

const (
	RoleClient Role = "client"
	RoleBarber Role = "barber"
	RoleAdmin  Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleBarber, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Username     string `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	FirstName    string `gorm:"size:100" json:"first_name"`
	LastName     string `gorm:"size:100" json:"last_name"`
	Phone        string `gorm:"size:20" json:"phone_number"`
	Role         Role   `gorm:"size:10;not null;default:'client'" json:"role"`
	AvatarURL    string `gorm:"size:255" json:"avatar_url"`
	Active       bool   `gorm:"not null;default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BarberStats holds the running rating aggregate of a barber.
type BarberStats struct {
	BarberID      uint    `gorm:"primaryKey" json:"barber_id"`
	AverageRating float64 `gorm:"not null;default:0" json:"average_rating"`
	TotalRatings  int64   `gorm:"not null;default:0" json:"total_ratings"`

	UpdatedAt time.Time `json:"updated_at"`
}
