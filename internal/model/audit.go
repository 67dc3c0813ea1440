package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreateOrder = "CREATE_ORDER"
	ActionUpdateOrder = "UPDATE_ORDER"
	ActionDeleteOrder = "DELETE_ORDER"

	ActionCreatePriceEntry = "CREATE_PRICE_ENTRY"
	ActionUpdatePriceEntry = "UPDATE_PRICE_ENTRY"
	ActionDeletePriceEntry = "DELETE_PRICE_ENTRY"

	ActionCreateMasterData = "CREATE_MASTER_DATA"
	ActionUpdateMasterData = "UPDATE_MASTER_DATA"
	ActionDeleteMasterData = "DELETE_MASTER_DATA"

	ActionCreateBudgetEntry = "CREATE_BUDGET_ENTRY"
	ActionUpdateBudgetEntry = "UPDATE_BUDGET_ENTRY"
	ActionDeleteBudgetEntry = "DELETE_BUDGET_ENTRY"
)

// AuditLog tracks Who, What, and When for critical system changes
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"` // Nullable gracefully if automated
	User       *User      `gorm:"foreignKey:UserID" json:"user"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`        // Reference string (uuid/code)
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"` // Human readable name
	Details    string     `gorm:"type:jsonb" json:"details"`                      // Serialized JSON payload of the action
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}
