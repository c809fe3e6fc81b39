package rating

import (
	"context"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/models"
)

type Repository interface {
	GetUser(ctx context.Context, id uint) (*models.User, error)
	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)

	// CreateRating inserts r and folds its score into the barber aggregate
	// in one atomic step, returning the new aggregate. A second rating for
	// the same (appointment, rater) yields domain.ErrDuplicate.
	CreateRating(ctx context.Context, r *models.Rating) (models.BarberStats, error)

	ListByRater(ctx context.Context, raterID uint) ([]models.Rating, error)
	ListByBarber(ctx context.Context, barberID uint, limit int) ([]models.Rating, error)
	ScoreDistribution(ctx context.Context, barberID uint) (map[int]int64, error)
	GetBarberStats(ctx context.Context, barberID uint) (models.BarberStats, error)
}
