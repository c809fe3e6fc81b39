package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/httperr"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/models"
)

// mapErr translates driver errors into the domain sentinels.
func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case httperr.IsUniqueViolation(err):
		return domain.ErrDuplicate
	case httperr.IsExclusionConflict(err):
		return domain.ErrSlotTaken
	}
	return err
}

// --------------------------------------------------
// Shared lookups
// --------------------------------------------------

func findUser(ctx context.Context, db *gorm.DB, id uint) (*models.User, error) {
	var u models.User
	if err := db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func findService(ctx context.Context, db *gorm.DB, id uint) (*models.Service, error) {
	var s models.Service
	if err := db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &s, nil
}

func findAppointment(ctx context.Context, db *gorm.DB, id uint) (*models.Appointment, error) {
	var ap models.Appointment
	if err := db.WithContext(ctx).
		Preload("Client").
		Preload("Barber").
		Preload("Service").
		Where("id = ? AND active", id).
		First(&ap).Error; err != nil {
		return nil, mapErr(err)
	}
	return &ap, nil
}

func listWorkingHours(ctx context.Context, db *gorm.DB, barberID uint) ([]models.WorkingHours, error) {
	var rows []models.WorkingHours
	if err := db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Order("weekday ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
