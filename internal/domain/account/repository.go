package account

import (
	"context"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/models"
)

// BarberProfile is a barber joined with the rating aggregate.
type BarberProfile struct {
	User  models.User
	Stats models.BarberStats
}

type Repository interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id uint) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UsernameOrEmailTaken(ctx context.Context, username, email string) (usernameTaken, emailTaken bool, err error)
	UpdateAvatar(ctx context.Context, userID uint, url string) error
	SetUserActive(ctx context.Context, userID uint, active bool) error

	ListBarbers(ctx context.Context) ([]BarberProfile, error)

	ListWorkingHours(ctx context.Context, barberID uint) ([]models.WorkingHours, error)
	ReplaceWorkingHours(ctx context.Context, barberID uint, days []models.WorkingHours) error
}
