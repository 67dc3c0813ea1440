package repository

import (
	"context"

	"nexusorder/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderRepository persists whole-record order snapshots. Reads go through the
// bounded retry wrapper; writes never do.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	Save(ctx context.Context, order *model.Order) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	List(ctx context.Context, page, limit int) ([]model.Order, int64, error)
	ListByDateRange(ctx context.Context, startDate, endDate string) ([]model.Order, error)
	AppendHistory(ctx context.Context, entry *model.OrderHistoryEntry) error
	SaveProgressLog(ctx context.Context, log *model.ProgressLogEntry) error
	FindProgressLog(ctx context.Context, orderID, logID uuid.UUID) (*model.ProgressLogEntry, error)
	DeleteProgressLog(ctx context.Context, orderID, logID uuid.UUID) error
	CreateAttachment(ctx context.Context, att *model.Attachment) error
	DeleteAttachment(ctx context.Context, orderID, attID uuid.UUID) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	return GetDB(ctx, r.db).Create(order).Error
}

// Save replaces the full record including associations; the core never issues
// partial updates.
func (r *orderRepository) Save(ctx context.Context, order *model.Order) error {
	return GetDB(ctx, r.db).Session(&gorm.Session{FullSaveAssociations: true}).Save(order).Error
}

func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Select("History", "Attachments", "ProgressLogs").Delete(&model.Order{ID: id}).Error
}

func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var order model.Order
	err := readRetry(ctx, func(ctx context.Context) error {
		return GetDB(ctx, r.db).
			Preload("History", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
			Preload("Attachments").
			Preload("ProgressLogs", func(db *gorm.DB) *gorm.DB { return db.Order("date ASC") }).
			First(&order, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) List(ctx context.Context, page, limit int) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64

	err := readRetry(ctx, func(ctx context.Context) error {
		db := GetDB(ctx, r.db)
		if err := db.Model(&model.Order{}).Count(&total).Error; err != nil {
			return err
		}

		offset := (page - 1) * limit
		return db.
			Preload("ProgressLogs").
			Order("date DESC, created_at DESC").
			Offset(offset).Limit(limit).
			Find(&orders).Error
	})
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// ListByDateRange loads orders whose registration date falls inside the
// inclusive ISO range; empty bounds are open-ended.
func (r *orderRepository) ListByDateRange(ctx context.Context, startDate, endDate string) ([]model.Order, error) {
	var orders []model.Order
	err := readRetry(ctx, func(ctx context.Context) error {
		db := GetDB(ctx, r.db).Preload("ProgressLogs")
		if startDate != "" {
			db = db.Where("date >= ?", startDate)
		}
		if endDate != "" {
			db = db.Where("date <= ?", endDate)
		}
		return db.Order("date ASC, created_at ASC").Find(&orders).Error
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) AppendHistory(ctx context.Context, entry *model.OrderHistoryEntry) error {
	return GetDB(ctx, r.db).Create(entry).Error
}

func (r *orderRepository) SaveProgressLog(ctx context.Context, log *model.ProgressLogEntry) error {
	return GetDB(ctx, r.db).Save(log).Error
}

// FindProgressLog looks up a log scoped to its owning order, so a log id
// belonging to a different order reads as not found.
func (r *orderRepository) FindProgressLog(ctx context.Context, orderID, logID uuid.UUID) (*model.ProgressLogEntry, error) {
	var log model.ProgressLogEntry
	if err := GetDB(ctx, r.db).First(&log, "id = ? AND order_id = ?", logID, orderID).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *orderRepository) DeleteProgressLog(ctx context.Context, orderID, logID uuid.UUID) error {
	res := GetDB(ctx, r.db).Where("order_id = ?", orderID).Delete(&model.ProgressLogEntry{}, "id = ?", logID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *orderRepository) CreateAttachment(ctx context.Context, att *model.Attachment) error {
	return GetDB(ctx, r.db).Create(att).Error
}

func (r *orderRepository) DeleteAttachment(ctx context.Context, orderID, attID uuid.UUID) error {
	res := GetDB(ctx, r.db).Where("order_id = ?", orderID).Delete(&model.Attachment{}, "id = ?", attID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
