package service

import (
	"context"
	"testing"

	"nexusorder/internal/model"
	"nexusorder/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type budgetFixture struct {
	db  *gorm.DB
	svc BudgetService
}

func newBudgetFixture(t *testing.T) *budgetFixture {
	t.Helper()
	db := newTestDB(t)
	tx := repository.NewTransactionManager(db)
	svc := NewBudgetService(
		repository.NewBudgetRepository(db),
		repository.NewOrderRepository(db),
		repository.NewAuditRepository(db),
		tx,
		zap.NewNop(),
	)
	return &budgetFixture{db: db, svc: svc}
}

func (f *budgetFixture) seedCategory(t *testing.T, name, kind string) *model.BudgetCategory {
	t.Helper()
	cat, err := f.svc.CreateCategory(context.Background(), tester, BudgetCategoryPayload{Name: name, Kind: kind})
	require.NoError(t, err)
	return cat
}

func TestSaveEntry_CreateAndUpdate(t *testing.T) {
	f := newBudgetFixture(t)
	cat := f.seedCategory(t, "Sales", model.BudgetKindIncome)

	entry, err := f.svc.SaveEntry(context.Background(), tester, "", BudgetEntryPayload{
		Company:    "Nexus SA",
		CategoryID: cat.ID.String(),
		Month:      "2024-03",
		Amount:     "1500.50",
	})
	require.NoError(t, err)
	assert.Equal(t, "USD", entry.Currency)
	assert.True(t, entry.Amount.Equal(decimal.RequireFromString("1500.50")))

	updated, err := f.svc.SaveEntry(context.Background(), tester, entry.ID.String(), BudgetEntryPayload{
		Company:    "Nexus SA",
		CategoryID: cat.ID.String(),
		Month:      "2024-03",
		Amount:     "2000",
		Currency:   "EUR",
	})
	require.NoError(t, err)
	assert.Equal(t, entry.ID, updated.ID)
	assert.Equal(t, "EUR", updated.Currency)

	entries, err := f.svc.ListEntries(context.Background(), "Nexus SA", "", "")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Amount.Equal(decimal.NewFromInt(2000)))
}

func TestSaveEntry_RejectsBadInput(t *testing.T) {
	f := newBudgetFixture(t)
	cat := f.seedCategory(t, "Sales", model.BudgetKindIncome)

	_, err := f.svc.SaveEntry(context.Background(), tester, "", BudgetEntryPayload{
		Company: "Nexus SA", CategoryID: cat.ID.String(), Month: "2024-03", Amount: "not-a-number",
	})
	assert.Error(t, err)

	_, err = f.svc.SaveEntry(context.Background(), tester, "", BudgetEntryPayload{
		Company: "Nexus SA", CategoryID: "nope", Month: "2024-03", Amount: "10",
	})
	assert.Error(t, err)
}

func TestBudgetVsActual_JoinsPlannedAndRealized(t *testing.T) {
	f := newBudgetFixture(t)
	income := f.seedCategory(t, "Sales", model.BudgetKindIncome)
	expense := f.seedCategory(t, "Fleet", model.BudgetKindExpense)

	// Planned income for March; the expense cell must not count
	_, err := f.svc.SaveEntry(context.Background(), tester, "", BudgetEntryPayload{
		Company: "Nexus SA", CategoryID: income.ID.String(), Month: "2024-03", Amount: "1000",
	})
	require.NoError(t, err)
	_, err = f.svc.SaveEntry(context.Background(), tester, "", BudgetEntryPayload{
		Company: "Nexus SA", CategoryID: expense.ID.String(), Month: "2024-03", Amount: "400",
	})
	require.NoError(t, err)

	// Realized revenue: 850 in March, 500 in April (April has no plan)
	seedOrder(t, f.db, "Nexus SA", "Acme Corp", "", "Registered", "2024-03-15", 10, 85, 50)
	seedOrder(t, f.db, "Nexus SA", "Borealis", "", "Registered", "2024-04-02", 5, 100, 40)

	rows, err := f.svc.BudgetVsActual(context.Background(), "Nexus SA", "2024-03", "2024-04")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	march := rows[0]
	assert.Equal(t, "2024-03", march.Month)
	assert.True(t, march.Planned.Equal(decimal.NewFromInt(1000)))
	assert.True(t, march.Actual.Equal(decimal.NewFromInt(850)))
	assert.True(t, march.Variance.Equal(decimal.NewFromInt(-150)))

	april := rows[1]
	assert.Equal(t, "2024-04", april.Month)
	assert.True(t, april.Planned.IsZero())
	assert.True(t, april.Actual.Equal(decimal.NewFromInt(500)))
}

func TestBudgetVsActual_ConvertsPlannedThroughMonthlyRate(t *testing.T) {
	f := newBudgetFixture(t)
	income := f.seedCategory(t, "Sales", model.BudgetKindIncome)

	_, err := f.svc.SaveEntry(context.Background(), tester, "", BudgetEntryPayload{
		Company: "Nexus SA", CategoryID: income.ID.String(), Month: "2024-03", Amount: "100", Currency: "EUR",
	})
	require.NoError(t, err)

	_, err = f.svc.SaveRate(context.Background(), tester, ExchangeRatePayload{
		Currency: "EUR", Month: "2024-03", Rate: "1.1",
	})
	require.NoError(t, err)

	rows, err := f.svc.BudgetVsActual(context.Background(), "Nexus SA", "2024-03", "2024-03")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.True(t, rows[0].Planned.Equal(decimal.RequireFromString("110")), "got %s", rows[0].Planned)
}

func TestBudgetVsActual_MissingRateDefaultsToOne(t *testing.T) {
	f := newBudgetFixture(t)
	income := f.seedCategory(t, "Sales", model.BudgetKindIncome)

	_, err := f.svc.SaveEntry(context.Background(), tester, "", BudgetEntryPayload{
		Company: "Nexus SA", CategoryID: income.ID.String(), Month: "2024-03", Amount: "100", Currency: "CLP",
	})
	require.NoError(t, err)

	rows, err := f.svc.BudgetVsActual(context.Background(), "Nexus SA", "", "")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Planned.Equal(decimal.NewFromInt(100)))
}
