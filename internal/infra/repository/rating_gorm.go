package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain/rating"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/models"
)

type RatingGormRepository struct {
	db *gorm.DB
}

func NewRatingGormRepository(db *gorm.DB) *RatingGormRepository {
	return &RatingGormRepository{db: db}
}

func (r *RatingGormRepository) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return findUser(ctx, r.db, id)
}

func (r *RatingGormRepository) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	return findAppointment(ctx, r.db, id)
}

// CreateRating inserts the rating and folds it into barber_stats in one
// transaction. The UPDATE reads the old total, so the mean stays exact
// under concurrent submissions for the same barber.
func (r *RatingGormRepository) CreateRating(ctx context.Context, rt *models.Rating) (models.BarberStats, error) {
	var stats models.BarberStats

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(rt).Error; err != nil {
			return mapErr(err)
		}

		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.BarberStats{BarberID: rt.BarberID}).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.BarberStats{}).
			Where("barber_id = ?", rt.BarberID).
			Updates(map[string]any{
				"average_rating": gorm.Expr("(average_rating * total_ratings + ?) / (total_ratings + 1)", rt.Score),
				"total_ratings":  gorm.Expr("total_ratings + 1"),
				"updated_at":     time.Now(),
			}).Error; err != nil {
			return err
		}

		if err := tx.First(&rt.Rater, rt.RaterID).Error; err != nil {
			return err
		}
		return tx.Where("barber_id = ?", rt.BarberID).First(&stats).Error
	})
	if err != nil {
		return models.BarberStats{}, err
	}
	return stats, nil
}

func (r *RatingGormRepository) ListByRater(ctx context.Context, raterID uint) ([]models.Rating, error) {
	var out []models.Rating
	err := r.db.WithContext(ctx).
		Preload("Rater").
		Where("rater_id = ?", raterID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *RatingGormRepository) ListByBarber(ctx context.Context, barberID uint, limit int) ([]models.Rating, error) {
	tx := r.db.WithContext(ctx).
		Preload("Rater").
		Where("barber_id = ?", barberID).
		Order("created_at DESC, id DESC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}

	var out []models.Rating
	err := tx.Find(&out).Error
	return out, err
}

func (r *RatingGormRepository) ScoreDistribution(ctx context.Context, barberID uint) (map[int]int64, error) {
	var rows []struct {
		Score int
		N     int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Select("score, COUNT(*) AS n").
		Where("barber_id = ?", barberID).
		Group("score").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	dist := make(map[int]int64, rating.MaxScore)
	for s := rating.MinScore; s <= rating.MaxScore; s++ {
		dist[s] = 0
	}
	for _, row := range rows {
		dist[row.Score] = row.N
	}
	return dist, nil
}

func (r *RatingGormRepository) GetBarberStats(ctx context.Context, barberID uint) (models.BarberStats, error) {
	var st models.BarberStats
	err := r.db.WithContext(ctx).Where("barber_id = ?", barberID).Limit(1).Find(&st).Error
	if err != nil {
		return models.BarberStats{}, err
	}
	st.BarberID = barberID
	return st, nil
}

var _ rating.Repository = (*RatingGormRepository)(nil)
