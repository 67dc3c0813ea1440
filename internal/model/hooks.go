package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IDs are generated application-side so the same models work against
// PostgreSQL and the in-memory SQLite used in tests.
func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func (o *Order) BeforeCreate(*gorm.DB) error { ensureID(&o.ID); return nil }
func (h *OrderHistoryEntry) BeforeCreate(*gorm.DB) error { ensureID(&h.ID); return nil }
func (a *Attachment) BeforeCreate(*gorm.DB) error { ensureID(&a.ID); return nil }
func (p *ProgressLogEntry) BeforeCreate(*gorm.DB) error { ensureID(&p.ID); return nil }

func (e *PriceListEntry) BeforeCreate(*gorm.DB) error { ensureID(&e.ID); return nil }

func (c *Client) BeforeCreate(*gorm.DB) error { ensureID(&c.ID); return nil }
func (c *Contractor) BeforeCreate(*gorm.DB) error { ensureID(&c.ID); return nil }
func (c *Company) BeforeCreate(*gorm.DB) error { ensureID(&c.ID); return nil }
func (u *UnitOfMeasure) BeforeCreate(*gorm.DB) error { ensureID(&u.ID); return nil }
func (s *ServiceCatalogItem) BeforeCreate(*gorm.DB) error { ensureID(&s.ID); return nil }

func (w *WorkflowStatus) BeforeCreate(*gorm.DB) error { ensureID(&w.ID); return nil }

func (c *BudgetCategory) BeforeCreate(*gorm.DB) error { ensureID(&c.ID); return nil }
func (e *BudgetEntry) BeforeCreate(*gorm.DB) error { ensureID(&e.ID); return nil }
func (r *ExchangeRate) BeforeCreate(*gorm.DB) error { ensureID(&r.ID); return nil }

func (u *User) BeforeCreate(*gorm.DB) error { ensureID(&u.ID); return nil }
func (t *RefreshToken) BeforeCreate(*gorm.DB) error { ensureID(&t.ID); return nil }

func (l *AuditLog) BeforeCreate(*gorm.DB) error { ensureID(&l.ID); return nil }
