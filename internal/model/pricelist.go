package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PriceListEntry is a priced offer for a service, scoped by selling company
// and optionally narrowed by client and/or contractor. Empty ClientID or
// ContractorID means the entry is generic and applies broadly.
// Validity is an inclusive ISO date range compared lexicographically.
type PriceListEntry struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ServiceName    string         `gorm:"type:varchar(255);not null;index" json:"service_name"`
	SellingCompany string         `gorm:"type:varchar(255);not null;index" json:"selling_company"`
	ContractorID   string         `gorm:"type:varchar(64);index" json:"contractor_id"`
	ClientID       string         `gorm:"type:varchar(64);index" json:"client_id"`
	UnitOfMeasure  string         `gorm:"type:varchar(50)" json:"unit_of_measure"`
	UnitPrice      float64        `gorm:"type:decimal(14,2);not null" json:"unit_price"`
	ContractorCost float64        `gorm:"type:decimal(14,2);default:0" json:"contractor_cost"`
	ValidFrom      string         `gorm:"type:varchar(10);not null" json:"valid_from"`
	ValidTo        string         `gorm:"type:varchar(10);not null" json:"valid_to"`
	Position       int            `gorm:"type:int;default:0" json:"position"` // catalog insertion order, drives first-match auto-fill
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
