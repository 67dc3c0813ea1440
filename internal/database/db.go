package database

import (
	"log"

	"nexusorder/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		log.Println("WARNING: Failed to auto-migrate models:", err)
	}

	return db, nil
}

// Migrate runs AutoMigrate for every core model. Exposed separately so tests
// can run it against their own database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.Company{},
		&model.Client{},
		&model.Contractor{},
		&model.UnitOfMeasure{},
		&model.ServiceCatalogItem{},
		&model.WorkflowStatus{},
		&model.PriceListEntry{},
		&model.Order{},
		&model.OrderHistoryEntry{},
		&model.Attachment{},
		&model.ProgressLogEntry{},
		&model.BudgetCategory{},
		&model.BudgetEntry{},
		&model.ExchangeRate{},
		&model.AuditLog{},
	)
}
