package service

import (
	"context"
	"testing"

	"nexusorder/internal/model"
	"nexusorder/internal/pricing"
	"nexusorder/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func seedOrder(t *testing.T, db *gorm.DB, company, client, contractor, status, date string, qty, price, cost float64) {
	t.Helper()
	o := model.Order{
		Date:           date,
		SellingCompany: company,
		ClientName:     client,
		ContractorName: contractor,
		ServiceName:    "Trenching",
		Status:         status,
		Quantity:       qty,
		UnitPrice:      price,
		UnitCost:       cost,
	}
	o.TotalValue = pricing.ComputeOrderEconomics(o).TotalValue
	require.NoError(t, db.Create(&o).Error)
}

func TestGetDashboard_TotalsAndBreakdowns(t *testing.T) {
	db := newTestDB(t)
	svc := NewDashboardService(repository.NewOrderRepository(db), zap.NewNop())

	seedOrder(t, db, "Nexus SA", "Acme Corp", "NorthWorks", "Registered", "2024-03-10", 10, 85, 50)
	seedOrder(t, db, "Nexus SA", "Borealis", "", "Billed", "2024-04-02", 5, 100, 40)
	seedOrder(t, db, "Nexus Chile", "Acme Corp", "NorthWorks", "Registered", "2024-04-20", 2, 200, 150)

	res, err := svc.GetDashboard(context.Background(), "", "")
	require.NoError(t, err)

	assert.Equal(t, 3, res.TotalOrders)
	assert.Equal(t, 850.0+500.0+400.0, res.TotalRevenue)
	assert.Equal(t, 350.0+300.0+100.0, res.TotalMargin)

	byCompany := map[string]float64{}
	for _, e := range res.RevenueByCompany {
		byCompany[e.Key] = e.Value
	}
	assert.Equal(t, 1350.0, byCompany["Nexus SA"])
	assert.Equal(t, 400.0, byCompany["Nexus Chile"])

	byStatus := map[string]float64{}
	for _, e := range res.OrdersByStatus {
		byStatus[e.Key] = e.Value
	}
	assert.Equal(t, 2.0, byStatus["Registered"])
	assert.Equal(t, 1.0, byStatus["Billed"])
}

func TestGetDashboard_TrendIsMonthlyAndSorted(t *testing.T) {
	db := newTestDB(t)
	svc := NewDashboardService(repository.NewOrderRepository(db), zap.NewNop())

	seedOrder(t, db, "Nexus SA", "Acme Corp", "", "Registered", "2024-04-02", 1, 100, 0)
	seedOrder(t, db, "Nexus SA", "Acme Corp", "", "Registered", "2024-03-10", 1, 50, 0)
	seedOrder(t, db, "Nexus SA", "Acme Corp", "", "Registered", "2024-03-25", 1, 25, 0)

	res, err := svc.GetDashboard(context.Background(), "", "")
	require.NoError(t, err)

	require.Len(t, res.MonthlyRevenue, 2)
	assert.Equal(t, model.TrendPoint{Month: "2024-03", Value: 75}, res.MonthlyRevenue[0])
	assert.Equal(t, model.TrendPoint{Month: "2024-04", Value: 100}, res.MonthlyRevenue[1])
}

func TestGetDashboard_ContractorLeaderboardLabelsUnassigned(t *testing.T) {
	db := newTestDB(t)
	svc := NewDashboardService(repository.NewOrderRepository(db), zap.NewNop())

	seedOrder(t, db, "Nexus SA", "Acme Corp", "NorthWorks", "Registered", "2024-03-10", 10, 85, 50)
	seedOrder(t, db, "Nexus SA", "Borealis", "", "Registered", "2024-03-11", 5, 100, 40)

	res, err := svc.GetDashboard(context.Background(), "", "")
	require.NoError(t, err)

	keys := make([]string, 0, len(res.TopContractors))
	for _, e := range res.TopContractors {
		keys = append(keys, e.Key)
	}
	assert.Contains(t, keys, "NorthWorks")
	assert.Contains(t, keys, pricing.UnassignedContractorLabel)
}

func TestGetDashboard_DateWindowFiltersOrders(t *testing.T) {
	db := newTestDB(t)
	svc := NewDashboardService(repository.NewOrderRepository(db), zap.NewNop())

	seedOrder(t, db, "Nexus SA", "Acme Corp", "", "Registered", "2024-02-28", 1, 100, 0)
	seedOrder(t, db, "Nexus SA", "Acme Corp", "", "Registered", "2024-03-10", 1, 50, 0)

	res, err := svc.GetDashboard(context.Background(), "2024-03-01", "2024-03-31")
	require.NoError(t, err)

	assert.Equal(t, 1, res.TotalOrders)
	assert.Equal(t, 50.0, res.TotalRevenue)
	assert.Equal(t, "2024-03-01", res.TimeRange.StartDate)
}

func TestGetDashboard_EmptyCollection(t *testing.T) {
	db := newTestDB(t)
	svc := NewDashboardService(repository.NewOrderRepository(db), zap.NewNop())

	res, err := svc.GetDashboard(context.Background(), "", "")
	require.NoError(t, err)

	assert.Zero(t, res.TotalRevenue)
	assert.Zero(t, res.TotalOrders)
	assert.Empty(t, res.MonthlyRevenue)
	assert.Empty(t, res.TopClients)
}
