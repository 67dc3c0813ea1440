package repository

import (
	"context"

	"nexusorder/internal/model"

	"gorm.io/gorm"
)

type AuditRepository interface {
	Log(ctx context.Context, entry *model.AuditLog) error
	List(ctx context.Context, page, limit int) ([]model.AuditLog, int64, error)
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Log(ctx context.Context, entry *model.AuditLog) error {
	return GetDB(ctx, r.db).Create(entry).Error
}

func (r *auditRepository) List(ctx context.Context, page, limit int) ([]model.AuditLog, int64, error) {
	var logs []model.AuditLog
	var total int64

	err := readRetry(ctx, func(ctx context.Context) error {
		db := GetDB(ctx, r.db)
		if err := db.Model(&model.AuditLog{}).Count(&total).Error; err != nil {
			return err
		}
		offset := (page - 1) * limit
		return db.Preload("User").Order("created_at DESC").Offset(offset).Limit(limit).Find(&logs).Error
	})
	if err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
