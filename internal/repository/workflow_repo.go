package repository

import (
	"context"

	"nexusorder/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WorkflowStatusRepository interface {
	Create(ctx context.Context, status *model.WorkflowStatus) error
	Update(ctx context.Context, status *model.WorkflowStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.WorkflowStatus, error)
	ListOrdered(ctx context.Context) ([]model.WorkflowStatus, error)
}

type workflowStatusRepository struct {
	db *gorm.DB
}

func NewWorkflowStatusRepository(db *gorm.DB) WorkflowStatusRepository {
	return &workflowStatusRepository{db: db}
}

func (r *workflowStatusRepository) Create(ctx context.Context, status *model.WorkflowStatus) error {
	return GetDB(ctx, r.db).Create(status).Error
}

func (r *workflowStatusRepository) Update(ctx context.Context, status *model.WorkflowStatus) error {
	return GetDB(ctx, r.db).Save(status).Error
}

func (r *workflowStatusRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Delete(&model.WorkflowStatus{}, "id = ?", id).Error
}

func (r *workflowStatusRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.WorkflowStatus, error) {
	var status model.WorkflowStatus
	if err := GetDB(ctx, r.db).First(&status, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &status, nil
}

// ListOrdered returns the pipeline in configured position order; the first
// entry doubles as the default status for unmatched order status strings.
func (r *workflowStatusRepository) ListOrdered(ctx context.Context) ([]model.WorkflowStatus, error) {
	var statuses []model.WorkflowStatus
	err := readRetry(ctx, func(ctx context.Context) error {
		return GetDB(ctx, r.db).Order("position ASC").Find(&statuses).Error
	})
	if err != nil {
		return nil, err
	}
	return statuses, nil
}
