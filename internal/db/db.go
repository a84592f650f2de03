package db

import (
	"fmt"
	"time"

	"github.com/barberflow/barberflow-server/internal/config"
	"github.com/barberflow/barberflow-server/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewDB conecta no backend primário. Erro aqui não derruba o processo: o
// chamador cai no modo degradado (cache local) quando o banco não está
// configurado ou não responde.
func NewDB(cfg *config.Config) (*gorm.DB, error) {
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
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}
