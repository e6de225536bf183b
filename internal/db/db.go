package db

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/mechapp/internal/config"
	"github.com/BruksfildServices01/mechapp/internal/models"
)

// AppointmentSlotIndex lets a scheduled slot be held by one appointment only.
const AppointmentSlotIndex = `
CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_mechanic_slot
ON appointments (mechanic_id, scheduled_for)
WHERE status = 'scheduled'`

func NewDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
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

	if err := db.AutoMigrate(
		&models.User{},
		&models.Workshop{},
		&models.Certificate{},
		&models.Appointment{},
		&models.Review{},
		&models.CommissionPayment{},
		&models.AuditLog{},
	); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	if err := db.Exec(AppointmentSlotIndex).Error; err != nil {
		return nil, fmt.Errorf("create appointment slot index: %w", err)
	}

	log.Info("database ready")
	return db, nil
}
