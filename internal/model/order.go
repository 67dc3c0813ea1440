package model

import (
	"time"

	"github.com/google/uuid"
)

// HistoryKind enum constants. STATUS_CHANGE entries are distinguishable from
// plain edits so the timeline can render workflow transitions differently.
const (
	HistoryCreate       = "CREATE"
	HistoryEdit         = "EDIT"
	HistoryStatusChange = "STATUS_CHANGE"
	HistoryProgress     = "PROGRESS"
	HistoryAttachment   = "ATTACHMENT"
)

// Order represents a sold unit of service moving through the workflow pipeline.
// UnitPrice/UnitCost are snapshotted from the price list at creation/edit time
// and never retroactively follow later price-list changes. TotalValue is
// derived (quantity * unit_price) and recomputed on every save.
type Order struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Date           string    `gorm:"type:varchar(10);not null;index" json:"date"` // ISO YYYY-MM-DD registration date
	SellingCompany string    `gorm:"type:varchar(255);not null;index" json:"selling_company"`
	ClientID       string    `gorm:"type:varchar(64);index" json:"client_id"`
	ClientName     string    `gorm:"type:varchar(255)" json:"client_name"`
	ContractorID   string    `gorm:"type:varchar(64);index" json:"contractor_id"`
	ContractorName string    `gorm:"type:varchar(255)" json:"contractor_name"`
	PONumber       string    `gorm:"column:po_number;type:varchar(100)" json:"po_number"`
	ServiceName    string    `gorm:"type:varchar(255);not null" json:"service_name"`
	ServiceDetails string    `gorm:"type:text" json:"service_details"`
	UnitOfMeasure  string    `gorm:"type:varchar(50)" json:"unit_of_measure"`
	Quantity       float64   `gorm:"type:decimal(14,2);not null" json:"quantity"`
	UnitPrice      float64   `gorm:"type:decimal(14,2);not null" json:"unit_price"`
	UnitCost       float64   `gorm:"type:decimal(14,2);default:0" json:"unit_cost"`
	TotalValue     float64   `gorm:"type:decimal(16,2);not null" json:"total_value"`
	Status         string    `gorm:"type:varchar(100);not null;index" json:"status"`
	OperationsRep  string    `gorm:"type:varchar(255)" json:"operations_rep"`
	Observations   string    `gorm:"type:text" json:"observations"`

	// Milestone dates, empty string when not reached yet
	CommitmentDate string `gorm:"type:varchar(10)" json:"commitment_date"`
	ClientCertDate string `gorm:"type:varchar(10)" json:"client_cert_date"`
	BillingDate    string `gorm:"type:varchar(10)" json:"billing_date"`

	History      []OrderHistoryEntry `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"history"`
	Attachments  []Attachment        `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"attachments"`
	ProgressLogs []ProgressLogEntry  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"progress_logs"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderHistoryEntry is an append-only audit record owned by a single order
type OrderHistoryEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	Kind      string    `gorm:"type:varchar(20);not null" json:"kind"` // CREATE, EDIT, STATUS_CHANGE, PROGRESS, ATTACHMENT
	Detail    string    `gorm:"type:text" json:"detail"`
	User      string    `gorm:"type:varchar(255)" json:"user"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// Attachment is a named external link owned by an order (files live elsewhere)
type Attachment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	URL       string    `gorm:"type:text;not null" json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// ProgressLogEntry is a partial-completion report against the order quantity.
// The sum of quantities is the cumulative completion; it is deliberately not
// clamped to the order quantity so over-reporting stays visible in raw numbers.
type ProgressLogEntry struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID           uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	Date              string    `gorm:"type:varchar(10);not null" json:"date"`
	Quantity          float64   `gorm:"type:decimal(14,2);not null" json:"quantity"`
	CertificationDate string    `gorm:"type:varchar(10)" json:"certification_date"`
	BillingDate       string    `gorm:"type:varchar(10)" json:"billing_date"`
	Notes             string    `gorm:"type:text" json:"notes"`
	User              string    `gorm:"type:varchar(255)" json:"user"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
