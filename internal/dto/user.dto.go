package dto

import (
	"time"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain/rating"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/models"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/timezone"
)

type UserDTO struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func User(u models.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

type ProfileDTO struct {
	ID          uint        `json:"id"`
	User        UserDTO     `json:"user"`
	Username    string      `json:"username"`
	Email       string      `json:"email"`
	Role        models.Role `json:"role"`
	PhoneNumber string      `json:"phone_number"`
	AvatarURL   string      `json:"avatar_url,omitempty"`
	CreatedAt   string      `json:"created_at"`
	Active      bool        `json:"active"`

	AverageRating *float64 `json:"average_rating,omitempty"`
	TotalRatings  *int64   `json:"total_ratings,omitempty"`
}

func Profile(u models.User, loc *time.Location) ProfileDTO {
	return ProfileDTO{
		ID:          u.ID,
		User:        User(u),
		Username:    u.Username,
		Email:       u.Email,
		Role:        u.Role,
		PhoneNumber: u.Phone,
		AvatarURL:   u.AvatarURL,
		CreatedAt:   timezone.Format(u.CreatedAt, loc),
		Active:      u.Active,
	}
}

func BarberProfile(b account.BarberProfile, loc *time.Location) ProfileDTO {
	p := Profile(b.User, loc)
	avg, total := rating.Round2(b.Stats.AverageRating), b.Stats.TotalRatings
	p.AverageRating = &avg
	p.TotalRatings = &total
	return p
}

func BarberProfiles(in []account.BarberProfile, loc *time.Location) []ProfileDTO {
	out := make([]ProfileDTO, len(in))
	for i, b := range in {
		out[i] = BarberProfile(b, loc)
	}
	return out
}

type AuthDTO struct {
	Token string     `json:"token"`
	User  ProfileDTO `json:"user"`
}
