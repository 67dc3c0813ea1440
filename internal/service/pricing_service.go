package service

import (
	"context"
	"encoding/json"
	"fmt"

	"nexusorder/internal/model"
	"nexusorder/internal/pricing"
	"nexusorder/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// --- DTOs ---

type PriceEntryPayload struct {
	ServiceName    string  `json:"service_name" binding:"required"`
	SellingCompany string  `json:"selling_company" binding:"required"`
	ContractorID   string  `json:"contractor_id"`
	ClientID       string  `json:"client_id"`
	UnitOfMeasure  string  `json:"unit_of_measure"`
	UnitPrice      float64 `json:"unit_price" binding:"required,gt=0"`
	ContractorCost float64 `json:"contractor_cost"`
	ValidFrom      string  `json:"valid_from" binding:"required"`
	ValidTo        string  `json:"valid_to" binding:"required"`
}

type ResolveRequest struct {
	SellingCompany string `json:"selling_company" form:"selling_company" binding:"required"`
	ClientID       string `json:"client_id" form:"client_id"`
	ContractorID   string `json:"contractor_id" form:"contractor_id"`
	AsOfDate       string `json:"as_of_date" form:"as_of_date" binding:"required"`
	ServiceName    string `json:"service_name" form:"service_name"` // optional: also return the auto-fill pick
}

type ResolveResponse struct {
	Eligible []model.PriceListEntry `json:"eligible"`
	AutoFill *model.PriceListEntry  `json:"auto_fill,omitempty"`
}

// --- Interface ---

type PriceListService interface {
	Create(ctx context.Context, who Identity, req PriceEntryPayload) (*model.PriceListEntry, error)
	Update(ctx context.Context, who Identity, id string, req PriceEntryPayload) (*model.PriceListEntry, error)
	Delete(ctx context.Context, who Identity, id string) error
	List(ctx context.Context, page, limit int) ([]model.PriceListEntry, int64, error)
	Resolve(ctx context.Context, req ResolveRequest) (ResolveResponse, error)
}

type priceListService struct {
	priceRepo repository.PriceListRepository
	auditRepo repository.AuditRepository
	txManager repository.TransactionManager
	logger    *zap.Logger
}

func NewPriceListService(
	priceRepo repository.PriceListRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	logger *zap.Logger,
) PriceListService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &priceListService{priceRepo: priceRepo, auditRepo: auditRepo, txManager: txManager, logger: logger}
}

// --- Implementation ---

func (s *priceListService) Create(ctx context.Context, who Identity, req PriceEntryPayload) (*model.PriceListEntry, error) {
	if req.ValidTo < req.ValidFrom {
		return nil, fmt.Errorf("valid_to %s precedes valid_from %s", req.ValidTo, req.ValidFrom)
	}

	entry := model.PriceListEntry{
		ServiceName:    req.ServiceName,
		SellingCompany: req.SellingCompany,
		ContractorID:   req.ContractorID,
		ClientID:       req.ClientID,
		UnitOfMeasure:  req.UnitOfMeasure,
		UnitPrice:      req.UnitPrice,
		ContractorCost: req.ContractorCost,
		ValidFrom:      req.ValidFrom,
		ValidTo:        req.ValidTo,
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		pos, err := s.priceRepo.NextPosition(txCtx)
		if err != nil {
			return fmt.Errorf("failed to assign catalog position: %w", err)
		}
		entry.Position = pos

		if err := s.priceRepo.Create(txCtx, &entry); err != nil {
			return fmt.Errorf("failed to create price entry: %w", err)
		}
		return s.audit(txCtx, who, model.ActionCreatePriceEntry, &entry, req)
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *priceListService) Update(ctx context.Context, who Identity, id string, req PriceEntryPayload) (*model.PriceListEntry, error) {
	entryID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid price entry id: %w", err)
	}
	if req.ValidTo < req.ValidFrom {
		return nil, fmt.Errorf("valid_to %s precedes valid_from %s", req.ValidTo, req.ValidFrom)
	}

	entry, err := s.priceRepo.FindByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("price entry not found: %w", err)
	}

	entry.ServiceName = req.ServiceName
	entry.SellingCompany = req.SellingCompany
	entry.ContractorID = req.ContractorID
	entry.ClientID = req.ClientID
	entry.UnitOfMeasure = req.UnitOfMeasure
	entry.UnitPrice = req.UnitPrice
	entry.ContractorCost = req.ContractorCost
	entry.ValidFrom = req.ValidFrom
	entry.ValidTo = req.ValidTo

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.priceRepo.Update(txCtx, entry); err != nil {
			return fmt.Errorf("failed to update price entry: %w", err)
		}
		return s.audit(txCtx, who, model.ActionUpdatePriceEntry, entry, req)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *priceListService) Delete(ctx context.Context, who Identity, id string) error {
	entryID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid price entry id: %w", err)
	}

	entry, err := s.priceRepo.FindByID(ctx, entryID)
	if err != nil {
		return fmt.Errorf("price entry not found: %w", err)
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.priceRepo.Delete(txCtx, entryID); err != nil {
			return fmt.Errorf("failed to delete price entry: %w", err)
		}
		return s.audit(txCtx, who, model.ActionDeletePriceEntry, entry, nil)
	})
}

func (s *priceListService) List(ctx context.Context, page, limit int) ([]model.PriceListEntry, int64, error) {
	entries, total, err := s.priceRepo.List(ctx, page, limit)
	if err != nil {
		s.logger.Warn("price list unavailable", zap.Error(err))
		return []model.PriceListEntry{}, 0, nil
	}
	return entries, total, nil
}

// Resolve runs the eligibility filter over the whole catalog for an order
// draft and, when a service name is given, includes the first-match auto-fill
// pick. An empty eligible set means the user enters values manually.
func (s *priceListService) Resolve(ctx context.Context, req ResolveRequest) (ResolveResponse, error) {
	catalog, err := s.priceRepo.ListAll(ctx)
	if err != nil {
		s.logger.Warn("price catalog unavailable for resolution", zap.Error(err))
		return ResolveResponse{Eligible: []model.PriceListEntry{}}, nil
	}

	eligible := pricing.ResolveEligiblePrices(catalog, pricing.ResolveContext{
		SellingCompany: req.SellingCompany,
		ClientID:       req.ClientID,
		ContractorID:   req.ContractorID,
		AsOfDate:       req.AsOfDate,
	})

	res := ResolveResponse{Eligible: eligible}
	if req.ServiceName != "" {
		if match, ok := pricing.AutoFill(eligible, req.ServiceName); ok {
			res.AutoFill = &match
		}
	}
	return res, nil
}

func (s *priceListService) audit(ctx context.Context, who Identity, action string, entry *model.PriceListEntry, payload interface{}) error {
	details, _ := json.Marshal(payload)
	record := &model.AuditLog{
		UserID:     who.UserUUID(),
		Action:     action,
		EntityID:   entry.ID.String(),
		EntityName: entry.ServiceName + " / " + entry.SellingCompany,
		Details:    string(details),
	}
	if err := s.auditRepo.Log(ctx, record); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}
