package repository

import (
	"context"

	"nexusorder/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// The master-data aggregates (clients, contractors, companies, units,
// service catalog) share the same whole-record CRUD shape, so they live
// behind one generic repository instead of five copies of it.

// MasterDataRepository is the shared CRUD surface for a master-data model T
type MasterDataRepository[T any] interface {
	Create(ctx context.Context, record *T) error
	Update(ctx context.Context, record *T) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	ListAll(ctx context.Context) ([]T, error)
}

type masterDataRepository[T any] struct {
	db      *gorm.DB
	orderBy string
}

// NewMasterDataRepository builds a repository for T listing rows by orderBy
func NewMasterDataRepository[T any](db *gorm.DB, orderBy string) MasterDataRepository[T] {
	return &masterDataRepository[T]{db: db, orderBy: orderBy}
}

func (r *masterDataRepository[T]) Create(ctx context.Context, record *T) error {
	return GetDB(ctx, r.db).Create(record).Error
}

func (r *masterDataRepository[T]) Update(ctx context.Context, record *T) error {
	return GetDB(ctx, r.db).Save(record).Error
}

func (r *masterDataRepository[T]) Delete(ctx context.Context, id uuid.UUID) error {
	var zero T
	return GetDB(ctx, r.db).Delete(&zero, "id = ?", id).Error
}

func (r *masterDataRepository[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var record T
	if err := GetDB(ctx, r.db).First(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *masterDataRepository[T]) ListAll(ctx context.Context) ([]T, error) {
	var records []T
	err := readRetry(ctx, func(ctx context.Context) error {
		return GetDB(ctx, r.db).Order(r.orderBy).Find(&records).Error
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Concrete aliases keep call sites readable

func NewClientRepository(db *gorm.DB) MasterDataRepository[model.Client] {
	return NewMasterDataRepository[model.Client](db, "name ASC")
}

func NewContractorRepository(db *gorm.DB) MasterDataRepository[model.Contractor] {
	return NewMasterDataRepository[model.Contractor](db, "name ASC")
}

func NewCompanyRepository(db *gorm.DB) MasterDataRepository[model.Company] {
	return NewMasterDataRepository[model.Company](db, "name ASC")
}

func NewUnitRepository(db *gorm.DB) MasterDataRepository[model.UnitOfMeasure] {
	return NewMasterDataRepository[model.UnitOfMeasure](db, "name ASC")
}

func NewServiceCatalogRepository(db *gorm.DB) MasterDataRepository[model.ServiceCatalogItem] {
	return NewMasterDataRepository[model.ServiceCatalogItem](db, "name ASC")
}
