package service

import (
	"context"
	"encoding/json"
	"fmt"

	"nexusorder/internal/model"
	"nexusorder/internal/repository"

	"github.com/google/uuid"
)

// --- DTOs ---

type WorkflowStatusPayload struct {
	Name     string `json:"name" binding:"required"`
	Position int    `json:"position"`
	Color    string `json:"color"`
}

// --- Interface ---

type WorkflowService interface {
	Create(ctx context.Context, who Identity, req WorkflowStatusPayload) (*model.WorkflowStatus, error)
	Update(ctx context.Context, who Identity, id string, req WorkflowStatusPayload) (*model.WorkflowStatus, error)
	Delete(ctx context.Context, who Identity, id string) error
	ListOrdered(ctx context.Context) ([]model.WorkflowStatus, error)
}

type workflowService struct {
	workflowRepo repository.WorkflowStatusRepository
	auditRepo    repository.AuditRepository
	txManager    repository.TransactionManager
}

func NewWorkflowService(
	workflowRepo repository.WorkflowStatusRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) WorkflowService {
	return &workflowService{workflowRepo: workflowRepo, auditRepo: auditRepo, txManager: txManager}
}

// --- Implementation ---

func (s *workflowService) Create(ctx context.Context, who Identity, req WorkflowStatusPayload) (*model.WorkflowStatus, error) {
	status := model.WorkflowStatus{Name: req.Name, Position: req.Position, Color: req.Color}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.workflowRepo.Create(txCtx, &status); err != nil {
			return fmt.Errorf("failed to create workflow status: %w", err)
		}
		return s.audit(txCtx, who, model.ActionCreateMasterData, &status)
	})
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (s *workflowService) Update(ctx context.Context, who Identity, id string, req WorkflowStatusPayload) (*model.WorkflowStatus, error) {
	statusID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid workflow status id: %w", err)
	}

	status, err := s.workflowRepo.FindByID(ctx, statusID)
	if err != nil {
		return nil, fmt.Errorf("workflow status not found: %w", err)
	}

	status.Name = req.Name
	status.Position = req.Position
	status.Color = req.Color

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.workflowRepo.Update(txCtx, status); err != nil {
			return fmt.Errorf("failed to update workflow status: %w", err)
		}
		return s.audit(txCtx, who, model.ActionUpdateMasterData, status)
	})
	if err != nil {
		return nil, err
	}
	return status, nil
}

func (s *workflowService) Delete(ctx context.Context, who Identity, id string) error {
	statusID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid workflow status id: %w", err)
	}

	status, err := s.workflowRepo.FindByID(ctx, statusID)
	if err != nil {
		return fmt.Errorf("workflow status not found: %w", err)
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.workflowRepo.Delete(txCtx, statusID); err != nil {
			return fmt.Errorf("failed to delete workflow status: %w", err)
		}
		return s.audit(txCtx, who, model.ActionDeleteMasterData, status)
	})
}

func (s *workflowService) ListOrdered(ctx context.Context) ([]model.WorkflowStatus, error) {
	return s.workflowRepo.ListOrdered(ctx)
}

func (s *workflowService) audit(ctx context.Context, who Identity, action string, status *model.WorkflowStatus) error {
	details, _ := json.Marshal(status)
	entry := &model.AuditLog{
		UserID:     who.UserUUID(),
		Action:     action,
		EntityID:   status.ID.String(),
		EntityName: "workflow status: " + status.Name,
		Details:    string(details),
	}
	if err := s.auditRepo.Log(ctx, entry); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}
