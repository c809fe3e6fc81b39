package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/audit"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/models"
)

type AuditGormRepository struct {
	db *gorm.DB
}

func NewAuditGormRepository(db *gorm.DB) *AuditGormRepository {
	return &AuditGormRepository{db: db}
}

func (r *AuditGormRepository) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *AuditGormRepository) ListAuditLogs(ctx context.Context, q audit.ListQuery) ([]models.AuditLog, error) {
	tx := r.db.WithContext(ctx).Order("created_at DESC, id DESC")
	if q.UserID != nil {
		tx = tx.Where("user_id = ?", *q.UserID)
	}
	if q.Action != "" {
		tx = tx.Where("action = ?", q.Action)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	var out []models.AuditLog
	err := tx.Find(&out).Error
	return out, err
}

var _ audit.Store = (*AuditGormRepository)(nil)
