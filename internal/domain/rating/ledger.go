package rating

import (
	"math"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/httperr"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/models"
)

const (
	MinScore = 1
	MaxScore = 5
)

func ValidateScore(score int) error {
	if score < MinScore || score > MaxScore {
		return httperr.Validation("invalid_score", "Score must be between 1 and 5.")
	}
	return nil
}

// Fold adds one score to a running mean.
func Fold(stats models.BarberStats, score int) models.BarberStats {
	n := float64(stats.TotalRatings)
	stats.AverageRating = (stats.AverageRating*n + float64(score)) / (n + 1)
	stats.TotalRatings++
	return stats
}

// Round2 rounds an average for presentation.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
