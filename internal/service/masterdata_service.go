package service

import (
	"context"
	"encoding/json"
	"fmt"

	"nexusorder/internal/model"
	"nexusorder/internal/repository"

	"github.com/google/uuid"
)

// MasterDataService is the shared CRUD surface over one master-data aggregate.
// Every mutation writes an audit record inside the same transaction.
type MasterDataService[T any] interface {
	Create(ctx context.Context, who Identity, record *T) (*T, error)
	Update(ctx context.Context, who Identity, id string, record *T) (*T, error)
	Delete(ctx context.Context, who Identity, id string) error
	Get(ctx context.Context, id string) (*T, error)
	ListAll(ctx context.Context) ([]T, error)
}

type masterDataService[T any] struct {
	entity    string
	repo      repository.MasterDataRepository[T]
	auditRepo repository.AuditRepository
	txManager repository.TransactionManager
	setID     func(*T, uuid.UUID)
	getID     func(*T) uuid.UUID
	name      func(*T) string
}

// MasterDataConfig wires the id/name accessors the generic service needs
type MasterDataConfig[T any] struct {
	Entity string
	SetID  func(*T, uuid.UUID)
	GetID  func(*T) uuid.UUID
	Name   func(*T) string
}

func NewMasterDataService[T any](
	repo repository.MasterDataRepository[T],
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	cfg MasterDataConfig[T],
) MasterDataService[T] {
	return &masterDataService[T]{
		entity:    cfg.Entity,
		repo:      repo,
		auditRepo: auditRepo,
		txManager: txManager,
		setID:     cfg.SetID,
		getID:     cfg.GetID,
		name:      cfg.Name,
	}
}

func (s *masterDataService[T]) Create(ctx context.Context, who Identity, record *T) (*T, error) {
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Create(txCtx, record); err != nil {
			return fmt.Errorf("failed to create %s: %w", s.entity, err)
		}
		return s.audit(txCtx, who, model.ActionCreateMasterData, record)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (s *masterDataService[T]) Update(ctx context.Context, who Identity, id string, record *T) (*T, error) {
	recordID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid %s id: %w", s.entity, err)
	}
	if _, err := s.repo.FindByID(ctx, recordID); err != nil {
		return nil, fmt.Errorf("%s not found: %w", s.entity, err)
	}
	s.setID(record, recordID)

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Update(txCtx, record); err != nil {
			return fmt.Errorf("failed to update %s: %w", s.entity, err)
		}
		return s.audit(txCtx, who, model.ActionUpdateMasterData, record)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (s *masterDataService[T]) Delete(ctx context.Context, who Identity, id string) error {
	recordID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid %s id: %w", s.entity, err)
	}
	record, err := s.repo.FindByID(ctx, recordID)
	if err != nil {
		return fmt.Errorf("%s not found: %w", s.entity, err)
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Delete(txCtx, recordID); err != nil {
			return fmt.Errorf("failed to delete %s: %w", s.entity, err)
		}
		return s.audit(txCtx, who, model.ActionDeleteMasterData, record)
	})
}

func (s *masterDataService[T]) Get(ctx context.Context, id string) (*T, error) {
	recordID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid %s id: %w", s.entity, err)
	}
	record, err := s.repo.FindByID(ctx, recordID)
	if err != nil {
		return nil, fmt.Errorf("%s not found: %w", s.entity, err)
	}
	return record, nil
}

func (s *masterDataService[T]) ListAll(ctx context.Context) ([]T, error) {
	return s.repo.ListAll(ctx)
}

func (s *masterDataService[T]) audit(ctx context.Context, who Identity, action string, record *T) error {
	details, _ := json.Marshal(record)
	entry := &model.AuditLog{
		UserID:     who.UserUUID(),
		Action:     action,
		EntityID:   s.getID(record).String(),
		EntityName: s.entity + ": " + s.name(record),
		Details:    string(details),
	}
	if err := s.auditRepo.Log(ctx, entry); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}

// Concrete constructors for each master-data aggregate

func NewClientService(db repository.MasterDataRepository[model.Client], audit repository.AuditRepository, tx repository.TransactionManager) MasterDataService[model.Client] {
	return NewMasterDataService(db, audit, tx, MasterDataConfig[model.Client]{
		Entity: "client",
		SetID:  func(c *model.Client, id uuid.UUID) { c.ID = id },
		GetID:  func(c *model.Client) uuid.UUID { return c.ID },
		Name:   func(c *model.Client) string { return c.Name },
	})
}

func NewContractorService(db repository.MasterDataRepository[model.Contractor], audit repository.AuditRepository, tx repository.TransactionManager) MasterDataService[model.Contractor] {
	return NewMasterDataService(db, audit, tx, MasterDataConfig[model.Contractor]{
		Entity: "contractor",
		SetID:  func(c *model.Contractor, id uuid.UUID) { c.ID = id },
		GetID:  func(c *model.Contractor) uuid.UUID { return c.ID },
		Name:   func(c *model.Contractor) string { return c.Name },
	})
}

func NewCompanyService(db repository.MasterDataRepository[model.Company], audit repository.AuditRepository, tx repository.TransactionManager) MasterDataService[model.Company] {
	return NewMasterDataService(db, audit, tx, MasterDataConfig[model.Company]{
		Entity: "company",
		SetID:  func(c *model.Company, id uuid.UUID) { c.ID = id },
		GetID:  func(c *model.Company) uuid.UUID { return c.ID },
		Name:   func(c *model.Company) string { return c.Name },
	})
}

func NewUnitService(db repository.MasterDataRepository[model.UnitOfMeasure], audit repository.AuditRepository, tx repository.TransactionManager) MasterDataService[model.UnitOfMeasure] {
	return NewMasterDataService(db, audit, tx, MasterDataConfig[model.UnitOfMeasure]{
		Entity: "unit",
		SetID:  func(u *model.UnitOfMeasure, id uuid.UUID) { u.ID = id },
		GetID:  func(u *model.UnitOfMeasure) uuid.UUID { return u.ID },
		Name:   func(u *model.UnitOfMeasure) string { return u.Name },
	})
}

func NewServiceCatalogService(db repository.MasterDataRepository[model.ServiceCatalogItem], audit repository.AuditRepository, tx repository.TransactionManager) MasterDataService[model.ServiceCatalogItem] {
	return NewMasterDataService(db, audit, tx, MasterDataConfig[model.ServiceCatalogItem]{
		Entity: "service",
		SetID:  func(s *model.ServiceCatalogItem, id uuid.UUID) { s.ID = id },
		GetID:  func(s *model.ServiceCatalogItem) uuid.UUID { return s.ID },
		Name:   func(s *model.ServiceCatalogItem) string { return s.Name },
	})
}
