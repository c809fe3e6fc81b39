package dto

import (
	"time"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/models"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/timezone"
	ratinguc "github.com/BruksfildServices01/barbershop-scheduler/internal/usecase/rating"
)

type RatingDTO struct {
	ID          uint    `json:"id"`
	Appointment uint    `json:"appointment"`
	User        UserDTO `json:"user"`
	UserName    string  `json:"user_name"`
	BarberID    uint    `json:"barber_id"`
	Score       int     `json:"score"`
	Comment     string  `json:"comment"`
	CreatedAt   string  `json:"created_at"`
}

func Rating(r models.Rating, loc *time.Location) RatingDTO {
	return RatingDTO{
		ID:          r.ID,
		Appointment: r.AppointmentID,
		User:        User(r.Rater),
		UserName:    r.Rater.Username,
		BarberID:    r.BarberID,
		Score:       r.Score,
		Comment:     r.Comment,
		CreatedAt:   timezone.Format(r.CreatedAt, loc),
	}
}

func Ratings(in []models.Rating, loc *time.Location) []RatingDTO {
	out := make([]RatingDTO, len(in))
	for i, r := range in {
		out[i] = Rating(r, loc)
	}
	return out
}

type BarberStatsDTO struct {
	BarberID      uint          `json:"barber_id"`
	AverageRating float64       `json:"average_rating"`
	TotalRatings  int64         `json:"total_ratings"`
	Distribution  map[int]int64 `json:"rating_distribution"`
	Recent        []RatingDTO   `json:"recent_ratings"`
}

func BarberStats(s ratinguc.BarberSummary, loc *time.Location) BarberStatsDTO {
	return BarberStatsDTO{
		BarberID:      s.BarberID,
		AverageRating: s.AverageRating,
		TotalRatings:  s.TotalRatings,
		Distribution:  s.Distribution,
		Recent:        Ratings(s.Recent, loc),
	}
}
