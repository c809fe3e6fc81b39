package catalog

import (
	"context"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/models"
)

type ListQuery struct {
	IncludeInactive bool
	Search          string
	// OrderBy is one of "price", "-price", "duration_minutes", "name".
	OrderBy string
}

type Repository interface {
	ListServices(ctx context.Context, q ListQuery) ([]models.Service, error)
	GetService(ctx context.Context, id uint) (*models.Service, error)
	CreateService(ctx context.Context, s *models.Service) error
	UpdateService(ctx context.Context, s *models.Service) error

	// PopularServices orders active services by number of appointments.
	PopularServices(ctx context.Context, limit int) ([]models.Service, error)
}
