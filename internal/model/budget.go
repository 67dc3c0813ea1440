package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BudgetKind enum constants
const (
	BudgetKindIncome  = "INCOME"
	BudgetKindExpense = "EXPENSE"
)

// BudgetCategory is a P&L line item grouping for the monthly planning grid
type BudgetCategory struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	Kind      string         `gorm:"type:varchar(20);not null;index" json:"kind"` // INCOME, EXPENSE
	Position  int            `gorm:"type:int;default:0" json:"position"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BudgetEntry is one planned amount for a (company, category, month) cell.
// Month uses the "YYYY-MM" form shared with the revenue trend aggregation.
type BudgetEntry struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Company    string          `gorm:"type:varchar(255);not null;index" json:"company"`
	CategoryID uuid.UUID       `gorm:"type:uuid;not null;index" json:"category_id"`
	Category   *BudgetCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Month      string          `gorm:"type:varchar(7);not null;index" json:"month"`
	Amount     decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"amount"`
	Currency   string          `gorm:"type:varchar(10);not null;default:'USD'" json:"currency"`
	Notes      string          `gorm:"type:text" json:"notes"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ExchangeRate converts a foreign-currency budget cell into the base currency
// for the month it applies to
type ExchangeRate struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Currency  string          `gorm:"type:varchar(10);not null;index" json:"currency"`
	Month     string          `gorm:"type:varchar(7);not null;index" json:"month"`
	Rate      decimal.Decimal `gorm:"type:decimal(18,6);not null" json:"rate"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
