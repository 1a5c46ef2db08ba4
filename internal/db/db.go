package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/harmoniahq/practice-api/internal/config"
	"github.com/harmoniahq/practice-api/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		// Unique violations come back as gorm.ErrDuplicatedKey so services
		// can map them to conflicts without driver-specific checks.
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Tenant{},
		&models.User{},
		&models.PractitionerProfile{},
		&models.Client{},
		&models.ClientConsent{},
		&models.Appointment{},
		&models.Session{},
		&models.SessionNote{},
		&models.AIJob{},
		&models.AISummary{},
		&models.Report{},
		&models.SubscriptionPlan{},
		&models.Subscription{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}
