package db

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/config"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/models"
)

// Two live appointments of the same barber may not overlap. The range is
// half-open, so back-to-back slots are accepted.
const exclusionConstraint = `
DO $$
BEGIN
	IF NOT EXISTS (
		SELECT 1 FROM pg_constraint WHERE conname = 'appointments_barber_no_overlap'
	) THEN
		ALTER TABLE appointments
			ADD CONSTRAINT appointments_barber_no_overlap
			EXCLUDE USING gist (
				barber_id WITH =,
				tstzrange(start_time, end_time, '[)') WITH &&
			)
			WHERE (status <> 'canceled' AND active);
	END IF;
END
$$;`

func NewDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{PrepareStmt: true}
	if cfg.IsProduction() {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Silent)
	}

	db, err := gorm.Open(postgres.Open(cfg.DBUrl), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Info("database ready")
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return fmt.Errorf("enable btree_gist: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.BarberStats{},
		&models.Service{},
		&models.WorkingHours{},
		&models.Appointment{},
		&models.Rating{},
		&models.Payment{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	if err := db.Exec(exclusionConstraint).Error; err != nil {
		return fmt.Errorf("appointment exclusion constraint: %w", err)
	}
	return nil
}
