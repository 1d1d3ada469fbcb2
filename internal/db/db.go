package db

import (
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/WorkshopServices01/workshop-api/internal/config"
	"github.com/WorkshopServices01/workshop-api/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logrus.WithError(err).Fatal("failed to get sql.DB")
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Vehicle{},
		&models.Part{},
		&models.Service{},
		&models.WorkOrder{},
		&models.WorkOrderItem{},
		&models.WorkOrderService{},
		&models.ApprovalRequest{},
		&models.Media{},
		&models.Invoice{},
		&models.Payment{},
		&models.AuditLog{},
	); err != nil {
		logrus.WithError(err).Fatal("failed to migrate")
	}

	// Older rows predate the lowercase status canon. One casing only.
	db.Exec(`UPDATE work_orders SET status = LOWER(status) WHERE status <> LOWER(status)`)

	return db
}
