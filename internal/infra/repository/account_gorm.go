package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/models"
)

type AccountGormRepository struct {
	db *gorm.DB
}

func NewAccountGormRepository(db *gorm.DB) *AccountGormRepository {
	return &AccountGormRepository{db: db}
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (r *AccountGormRepository) CreateUser(ctx context.Context, u *models.User) error {
	return mapErr(r.db.WithContext(ctx).Create(u).Error)
}

func (r *AccountGormRepository) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return findUser(ctx, r.db, id)
}

func (r *AccountGormRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (r *AccountGormRepository) UsernameOrEmailTaken(ctx context.Context, username, email string) (bool, bool, error) {
	var byName, byEmail int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ?", username).
		Count(&byName).Error; err != nil {
		return false, false, err
	}
	if err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		Count(&byEmail).Error; err != nil {
		return false, false, err
	}
	return byName > 0, byEmail > 0, nil
}

func (r *AccountGormRepository) UpdateAvatar(ctx context.Context, userID uint, url string) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{"avatar_url": url, "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AccountGormRepository) SetUserActive(ctx context.Context, userID uint, active bool) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{"active": active, "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AccountGormRepository) ListBarbers(ctx context.Context) ([]account.BarberProfile, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Where("role = ? AND active", models.RoleBarber).
		Order("id ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}

	ids := make([]uint, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	var stats []models.BarberStats
	if err := r.db.WithContext(ctx).Where("barber_id IN ?", ids).Find(&stats).Error; err != nil {
		return nil, err
	}
	byBarber := make(map[uint]models.BarberStats, len(stats))
	for _, st := range stats {
		byBarber[st.BarberID] = st
	}

	out := make([]account.BarberProfile, len(users))
	for i, u := range users {
		st, ok := byBarber[u.ID]
		if !ok {
			st = models.BarberStats{BarberID: u.ID}
		}
		out[i] = account.BarberProfile{User: u, Stats: st}
	}
	return out, nil
}

// --------------------------------------------------
// Working hours
// --------------------------------------------------

func (r *AccountGormRepository) ListWorkingHours(ctx context.Context, barberID uint) ([]models.WorkingHours, error) {
	return listWorkingHours(ctx, r.db, barberID)
}

func (r *AccountGormRepository) ReplaceWorkingHours(ctx context.Context, barberID uint, days []models.WorkingHours) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("barber_id = ?", barberID).Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}
		if len(days) == 0 {
			return nil
		}

		rows := make([]models.WorkingHours, len(days))
		for i, d := range days {
			d.ID = 0
			d.BarberID = barberID
			rows[i] = d
		}
		return tx.Create(&rows).Error
	})
}

var _ account.Repository = (*AccountGormRepository)(nil)
