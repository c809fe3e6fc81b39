package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/models"
)

type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

var serviceOrder = map[string]string{
	"price":            "price ASC, id ASC",
	"-price":           "price DESC, id ASC",
	"duration_minutes": "duration_minutes ASC, id ASC",
	"name":             "name ASC, id ASC",
}

func (r *CatalogGormRepository) ListServices(ctx context.Context, q catalog.ListQuery) ([]models.Service, error) {
	tx := r.db.WithContext(ctx).Model(&models.Service{})
	if !q.IncludeInactive {
		tx = tx.Where("active = ?", true)
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		like := "%" + s + "%"
		tx = tx.Where("(name ILIKE ? OR description ILIKE ?)", like, like)
	}

	order, ok := serviceOrder[q.OrderBy]
	if !ok {
		order = serviceOrder["name"]
	}

	var out []models.Service
	err := tx.Order(order).Find(&out).Error
	return out, err
}

func (r *CatalogGormRepository) GetService(ctx context.Context, id uint) (*models.Service, error) {
	return findService(ctx, r.db, id)
}

func (r *CatalogGormRepository) CreateService(ctx context.Context, s *models.Service) error {
	return mapErr(r.db.WithContext(ctx).Create(s).Error)
}

func (r *CatalogGormRepository) UpdateService(ctx context.Context, s *models.Service) error {
	return mapErr(r.db.WithContext(ctx).Save(s).Error)
}

func (r *CatalogGormRepository) PopularServices(ctx context.Context, limit int) ([]models.Service, error) {
	var out []models.Service
	err := r.db.WithContext(ctx).
		Model(&models.Service{}).
		Select("services.*").
		Joins("LEFT JOIN appointments ON appointments.service_id = services.id AND appointments.active").
		Where("services.active = ?", true).
		Group("services.id").
		Order("COUNT(appointments.id) DESC, services.id ASC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

var _ catalog.Repository = (*CatalogGormRepository)(nil)
