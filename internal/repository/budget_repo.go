package repository

import (
	"context"

	"nexusorder/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BudgetRepository interface {
	CreateCategory(ctx context.Context, cat *model.BudgetCategory) error
	UpdateCategory(ctx context.Context, cat *model.BudgetCategory) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	ListCategories(ctx context.Context) ([]model.BudgetCategory, error)

	SaveEntry(ctx context.Context, entry *model.BudgetEntry) error
	DeleteEntry(ctx context.Context, id uuid.UUID) error
	FindEntryByID(ctx context.Context, id uuid.UUID) (*model.BudgetEntry, error)
	ListEntries(ctx context.Context, company string, fromMonth, toMonth string) ([]model.BudgetEntry, error)

	SaveRate(ctx context.Context, rate *model.ExchangeRate) error
	ListRates(ctx context.Context) ([]model.ExchangeRate, error)
}

type budgetRepository struct {
	db *gorm.DB
}

func NewBudgetRepository(db *gorm.DB) BudgetRepository {
	return &budgetRepository{db: db}
}

func (r *budgetRepository) CreateCategory(ctx context.Context, cat *model.BudgetCategory) error {
	return GetDB(ctx, r.db).Create(cat).Error
}

func (r *budgetRepository) UpdateCategory(ctx context.Context, cat *model.BudgetCategory) error {
	return GetDB(ctx, r.db).Save(cat).Error
}

func (r *budgetRepository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Delete(&model.BudgetCategory{}, "id = ?", id).Error
}

func (r *budgetRepository) ListCategories(ctx context.Context) ([]model.BudgetCategory, error) {
	var cats []model.BudgetCategory
	err := readRetry(ctx, func(ctx context.Context) error {
		return GetDB(ctx, r.db).Order("position ASC, name ASC").Find(&cats).Error
	})
	if err != nil {
		return nil, err
	}
	return cats, nil
}

func (r *budgetRepository) SaveEntry(ctx context.Context, entry *model.BudgetEntry) error {
	return GetDB(ctx, r.db).Save(entry).Error
}

func (r *budgetRepository) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Delete(&model.BudgetEntry{}, "id = ?", id).Error
}

func (r *budgetRepository) FindEntryByID(ctx context.Context, id uuid.UUID) (*model.BudgetEntry, error) {
	var entry model.BudgetEntry
	if err := GetDB(ctx, r.db).Preload("Category").First(&entry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *budgetRepository) ListEntries(ctx context.Context, company, fromMonth, toMonth string) ([]model.BudgetEntry, error) {
	var entries []model.BudgetEntry
	err := readRetry(ctx, func(ctx context.Context) error {
		db := GetDB(ctx, r.db).Preload("Category")
		if company != "" {
			db = db.Where("company = ?", company)
		}
		if fromMonth != "" {
			db = db.Where("month >= ?", fromMonth)
		}
		if toMonth != "" {
			db = db.Where("month <= ?", toMonth)
		}
		return db.Order("month ASC").Find(&entries).Error
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *budgetRepository) SaveRate(ctx context.Context, rate *model.ExchangeRate) error {
	return GetDB(ctx, r.db).Save(rate).Error
}

func (r *budgetRepository) ListRates(ctx context.Context) ([]model.ExchangeRate, error) {
	var rates []model.ExchangeRate
	err := readRetry(ctx, func(ctx context.Context) error {
		return GetDB(ctx, r.db).Order("month ASC, currency ASC").Find(&rates).Error
	})
	if err != nil {
		return nil, err
	}
	return rates, nil
}
