package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role enum constants. Viewer is read-only everywhere; writes need
// operations or admin.
const (
	RoleAdmin      = "admin"
	RoleOperations = "operations"
	RoleViewer     = "viewer"
)

// DefaultPIN is used when an operator has no PIN configured yet. The PIN gate
// is an access convenience for a trusted office, not a credential system.
const DefaultPIN = "1234"

// User is an operator identity selectable at login
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Email     string         `gorm:"type:varchar(255)" json:"email"`
	PINHash   string         `gorm:"column:pin_hash;type:varchar(255)" json:"-"` // bcrypt; empty means DefaultPIN applies
	Role      string         `gorm:"type:varchar(50);not null;default:'viewer'" json:"role"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// RefreshToken stores long-lived tokens allowing users to request new access tokens
type RefreshToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Token     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"token"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
