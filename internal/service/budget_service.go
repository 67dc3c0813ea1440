package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"nexusorder/internal/model"
	"nexusorder/internal/pricing"
	"nexusorder/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// --- DTOs ---

type BudgetCategoryPayload struct {
	Name     string `json:"name" binding:"required"`
	Kind     string `json:"kind" binding:"required,oneof=INCOME EXPENSE"`
	Position int    `json:"position"`
}

type BudgetEntryPayload struct {
	Company    string `json:"company" binding:"required"`
	CategoryID string `json:"category_id" binding:"required"`
	Month      string `json:"month" binding:"required"` // "YYYY-MM"
	Amount     string `json:"amount" binding:"required"`
	Currency   string `json:"currency"`
	Notes      string `json:"notes"`
}

type ExchangeRatePayload struct {
	Currency string `json:"currency" binding:"required"`
	Month    string `json:"month" binding:"required"`
	Rate     string `json:"rate" binding:"required"`
}

// BudgetReportRow compares one planned income cell against the actual order
// revenue for the same company and month. Planned amounts are converted to
// the base currency through the month's exchange rate (1 when absent).
type BudgetReportRow struct {
	Company  string          `json:"company"`
	Month    string          `json:"month"`
	Planned  decimal.Decimal `json:"planned"`
	Actual   decimal.Decimal `json:"actual"`
	Variance decimal.Decimal `json:"variance"`
}

// --- Interface ---

type BudgetService interface {
	CreateCategory(ctx context.Context, who Identity, req BudgetCategoryPayload) (*model.BudgetCategory, error)
	UpdateCategory(ctx context.Context, who Identity, id string, req BudgetCategoryPayload) (*model.BudgetCategory, error)
	DeleteCategory(ctx context.Context, who Identity, id string) error
	ListCategories(ctx context.Context) ([]model.BudgetCategory, error)

	SaveEntry(ctx context.Context, who Identity, id string, req BudgetEntryPayload) (*model.BudgetEntry, error)
	DeleteEntry(ctx context.Context, who Identity, id string) error
	ListEntries(ctx context.Context, company, fromMonth, toMonth string) ([]model.BudgetEntry, error)

	SaveRate(ctx context.Context, who Identity, req ExchangeRatePayload) (*model.ExchangeRate, error)
	ListRates(ctx context.Context) ([]model.ExchangeRate, error)

	BudgetVsActual(ctx context.Context, company, fromMonth, toMonth string) ([]BudgetReportRow, error)
}

type budgetService struct {
	budgetRepo repository.BudgetRepository
	orderRepo  repository.OrderRepository
	auditRepo  repository.AuditRepository
	txManager  repository.TransactionManager
	logger     *zap.Logger
}

func NewBudgetService(
	budgetRepo repository.BudgetRepository,
	orderRepo repository.OrderRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	logger *zap.Logger,
) BudgetService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &budgetService{
		budgetRepo: budgetRepo,
		orderRepo:  orderRepo,
		auditRepo:  auditRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

// --- Categories ---

func (s *budgetService) CreateCategory(ctx context.Context, who Identity, req BudgetCategoryPayload) (*model.BudgetCategory, error) {
	cat := model.BudgetCategory{Name: req.Name, Kind: req.Kind, Position: req.Position}
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.budgetRepo.CreateCategory(txCtx, &cat); err != nil {
			return fmt.Errorf("failed to create budget category: %w", err)
		}
		return s.audit(txCtx, who, model.ActionCreateMasterData, cat.ID.String(), "budget category: "+cat.Name, req)
	})
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

func (s *budgetService) UpdateCategory(ctx context.Context, who Identity, id string, req BudgetCategoryPayload) (*model.BudgetCategory, error) {
	catID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid category id: %w", err)
	}

	cat := model.BudgetCategory{ID: catID, Name: req.Name, Kind: req.Kind, Position: req.Position}
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.budgetRepo.UpdateCategory(txCtx, &cat); err != nil {
			return fmt.Errorf("failed to update budget category: %w", err)
		}
		return s.audit(txCtx, who, model.ActionUpdateMasterData, id, "budget category: "+cat.Name, req)
	})
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

func (s *budgetService) DeleteCategory(ctx context.Context, who Identity, id string) error {
	catID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid category id: %w", err)
	}
	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.budgetRepo.DeleteCategory(txCtx, catID); err != nil {
			return fmt.Errorf("failed to delete budget category: %w", err)
		}
		return s.audit(txCtx, who, model.ActionDeleteMasterData, id, "budget category", nil)
	})
}

func (s *budgetService) ListCategories(ctx context.Context) ([]model.BudgetCategory, error) {
	return s.budgetRepo.ListCategories(ctx)
}

// --- Entries ---

// SaveEntry creates when id is empty and replaces the whole record otherwise
func (s *budgetService) SaveEntry(ctx context.Context, who Identity, id string, req BudgetEntryPayload) (*model.BudgetEntry, error) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}
	catID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("invalid category_id: %w", err)
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	entry := model.BudgetEntry{
		Company:    req.Company,
		CategoryID: catID,
		Month:      req.Month,
		Amount:     amount,
		Currency:   currency,
		Notes:      req.Notes,
	}

	action := model.ActionCreateBudgetEntry
	if id != "" {
		entryID, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("invalid budget entry id: %w", err)
		}
		if _, err := s.budgetRepo.FindEntryByID(ctx, entryID); err != nil {
			return nil, fmt.Errorf("budget entry not found: %w", err)
		}
		entry.ID = entryID
		action = model.ActionUpdateBudgetEntry
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.budgetRepo.SaveEntry(txCtx, &entry); err != nil {
			return fmt.Errorf("failed to save budget entry: %w", err)
		}
		return s.audit(txCtx, who, action, entry.ID.String(), "budget "+entry.Company+" "+entry.Month, req)
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *budgetService) DeleteEntry(ctx context.Context, who Identity, id string) error {
	entryID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid budget entry id: %w", err)
	}
	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.budgetRepo.DeleteEntry(txCtx, entryID); err != nil {
			return fmt.Errorf("failed to delete budget entry: %w", err)
		}
		return s.audit(txCtx, who, model.ActionDeleteBudgetEntry, id, "budget entry", nil)
	})
}

func (s *budgetService) ListEntries(ctx context.Context, company, fromMonth, toMonth string) ([]model.BudgetEntry, error) {
	return s.budgetRepo.ListEntries(ctx, company, fromMonth, toMonth)
}

// --- Exchange rates ---

func (s *budgetService) SaveRate(ctx context.Context, who Identity, req ExchangeRatePayload) (*model.ExchangeRate, error) {
	rate, err := decimal.NewFromString(req.Rate)
	if err != nil {
		return nil, fmt.Errorf("invalid rate: %w", err)
	}

	record := model.ExchangeRate{Currency: req.Currency, Month: req.Month, Rate: rate}
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.budgetRepo.SaveRate(txCtx, &record); err != nil {
			return fmt.Errorf("failed to save exchange rate: %w", err)
		}
		return s.audit(txCtx, who, model.ActionUpdateMasterData, record.ID.String(), "exchange rate "+req.Currency+" "+req.Month, req)
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *budgetService) ListRates(ctx context.Context) ([]model.ExchangeRate, error) {
	return s.budgetRepo.ListRates(ctx)
}

// --- Reporting ---

// BudgetVsActual joins planned INCOME cells against actual order revenue per
// (company, month). Months with revenue but no plan, and plans with no
// revenue, both produce rows so the gaps are visible.
func (s *budgetService) BudgetVsActual(ctx context.Context, company, fromMonth, toMonth string) ([]BudgetReportRow, error) {
	entries, err := s.budgetRepo.ListEntries(ctx, company, fromMonth, toMonth)
	if err != nil {
		s.logger.Warn("budget entries unavailable", zap.Error(err))
		entries = nil
	}

	rates, err := s.budgetRepo.ListRates(ctx)
	if err != nil {
		s.logger.Warn("exchange rates unavailable, assuming base currency", zap.Error(err))
		rates = nil
	}
	rateFor := func(currency, month string) decimal.Decimal {
		for _, r := range rates {
			if r.Currency == currency && r.Month == month {
				return r.Rate
			}
		}
		return decimal.NewFromInt(1)
	}

	var startDate, endDate string
	if fromMonth != "" {
		startDate = fromMonth + "-01"
	}
	if toMonth != "" {
		endDate = toMonth + "-31"
	}
	orders, err := s.orderRepo.ListByDateRange(ctx, startDate, endDate)
	if err != nil {
		s.logger.Warn("orders unavailable for budget report", zap.Error(err))
		orders = nil
	}
	if company != "" {
		orders = pricing.FilterOrders(orders, pricing.ListFilter{Companies: []string{company}})
	}

	type cell struct{ company, month string }
	planned := make(map[cell]decimal.Decimal)
	for _, e := range entries {
		if e.Category != nil && e.Category.Kind != model.BudgetKindIncome {
			continue
		}
		key := cell{e.Company, e.Month}
		converted := e.Amount.Mul(rateFor(e.Currency, e.Month))
		planned[key] = planned[key].Add(converted)
	}

	actual := make(map[cell]decimal.Decimal)
	for _, o := range orders {
		key := cell{o.SellingCompany, pricing.MonthKey(o)}
		revenue := decimal.NewFromFloat(pricing.TotalValue(o))
		actual[key] = actual[key].Add(revenue)
	}

	seen := make(map[cell]bool)
	var cells []cell
	for k := range planned {
		if !seen[k] {
			seen[k] = true
			cells = append(cells, k)
		}
	}
	for k := range actual {
		if !seen[k] {
			seen[k] = true
			cells = append(cells, k)
		}
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].month != cells[j].month {
			return cells[i].month < cells[j].month
		}
		return cells[i].company < cells[j].company
	})

	rows := make([]BudgetReportRow, 0, len(cells))
	for _, k := range cells {
		p := planned[k]
		a := actual[k]
		rows = append(rows, BudgetReportRow{
			Company:  k.company,
			Month:    k.month,
			Planned:  p,
			Actual:   a,
			Variance: a.Sub(p),
		})
	}
	return rows, nil
}

func (s *budgetService) audit(ctx context.Context, who Identity, action, entityID, entityName string, payload interface{}) error {
	details, _ := json.Marshal(payload)
	entry := &model.AuditLog{
		UserID:     who.UserUUID(),
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    string(details),
	}
	if err := s.auditRepo.Log(ctx, entry); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}
