package repository

import (
	"context"

	"nexusorder/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PriceListRepository interface {
	Create(ctx context.Context, entry *model.PriceListEntry) error
	Update(ctx context.Context, entry *model.PriceListEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.PriceListEntry, error)
	ListAll(ctx context.Context) ([]model.PriceListEntry, error)
	List(ctx context.Context, page, limit int) ([]model.PriceListEntry, int64, error)
	NextPosition(ctx context.Context) (int, error)
}

type priceListRepository struct {
	db *gorm.DB
}

func NewPriceListRepository(db *gorm.DB) PriceListRepository {
	return &priceListRepository{db: db}
}

func (r *priceListRepository) Create(ctx context.Context, entry *model.PriceListEntry) error {
	return GetDB(ctx, r.db).Create(entry).Error
}

func (r *priceListRepository) Update(ctx context.Context, entry *model.PriceListEntry) error {
	return GetDB(ctx, r.db).Save(entry).Error
}

func (r *priceListRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Delete(&model.PriceListEntry{}, "id = ?", id).Error
}

func (r *priceListRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.PriceListEntry, error) {
	var entry model.PriceListEntry
	if err := GetDB(ctx, r.db).First(&entry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListAll returns the whole catalog in insertion order. Price resolution is
// order-sensitive (first exact name match wins on auto-fill), so Position is
// the authoritative ordering.
func (r *priceListRepository) ListAll(ctx context.Context) ([]model.PriceListEntry, error) {
	var entries []model.PriceListEntry
	err := readRetry(ctx, func(ctx context.Context) error {
		return GetDB(ctx, r.db).Order("position ASC, created_at ASC").Find(&entries).Error
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *priceListRepository) List(ctx context.Context, page, limit int) ([]model.PriceListEntry, int64, error) {
	var entries []model.PriceListEntry
	var total int64

	err := readRetry(ctx, func(ctx context.Context) error {
		db := GetDB(ctx, r.db)
		if err := db.Model(&model.PriceListEntry{}).Count(&total).Error; err != nil {
			return err
		}
		offset := (page - 1) * limit
		return db.Order("position ASC, created_at ASC").Offset(offset).Limit(limit).Find(&entries).Error
	})
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (r *priceListRepository) NextPosition(ctx context.Context) (int, error) {
	var max struct{ Max int }
	if err := GetDB(ctx, r.db).Model(&model.PriceListEntry{}).
		Select("COALESCE(MAX(position), -1) as max").Scan(&max).Error; err != nil {
		return 0, err
	}
	return max.Max + 1, nil
}
