package service

import (
	"context"
	"time"

	"nexusorder/internal/model"
	"nexusorder/internal/repository"

	"github.com/google/uuid"
)

type AuditLogResponse struct {
	ID         uuid.UUID `json:"id"`
	UserName   string    `json:"user_name"`
	Action     string    `json:"action"`
	EntityID   string    `json:"entity_id"`
	EntityName string    `json:"entity_name"`
	Details    string    `json:"details"`
	CreatedAt  string    `json:"created_at"`
}

// AuditService exposes the change trail written alongside every mutation.
type AuditService interface {
	ListLogs(ctx context.Context, page, limit int) ([]AuditLogResponse, int64, error)
}

type auditService struct {
	repo repository.AuditRepository
}

func NewAuditService(repo repository.AuditRepository) AuditService {
	return &auditService{repo: repo}
}

func (s *auditService) ListLogs(ctx context.Context, page, limit int) ([]AuditLogResponse, int64, error) {
	logs, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		responses = append(responses, mapAuditLog(&l))
	}
	return responses, total, nil
}

func mapAuditLog(l *model.AuditLog) AuditLogResponse {
	userName := "System"
	if l.User != nil && l.User.Name != "" {
		userName = l.User.Name
	}
	return AuditLogResponse{
		ID:         l.ID,
		UserName:   userName,
		Action:     l.Action,
		EntityID:   l.EntityID,
		EntityName: l.EntityName,
		Details:    l.Details,
		CreatedAt:  l.CreatedAt.Format(time.RFC3339),
	}
}
