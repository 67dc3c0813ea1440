package model

import (
	"time"

	"github.com/google/uuid"
)

// WorkflowStatus is a named, ordered, colored pipeline stage. Orders reference
// statuses by name (free-form string), validated against this table on save.
type WorkflowStatus struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Position  int       `gorm:"type:int;not null" json:"position"` // pipeline order, 0-based
	Color     string    `gorm:"type:varchar(20)" json:"color"`     // hex color for UI chips
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
