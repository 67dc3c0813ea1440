package service

import (
	"context"

	"nexusorder/internal/model"
	"nexusorder/internal/pricing"
	"nexusorder/internal/repository"

	"go.uber.org/zap"
)

const (
	trendPeriods    = 6
	leaderboardSize = 5
)

type DashboardService interface {
	GetDashboard(ctx context.Context, startDate, endDate string) (model.DashboardResponse, error)
}

type dashboardService struct {
	orderRepo repository.OrderRepository
	logger    *zap.Logger
}

func NewDashboardService(orderRepo repository.OrderRepository, logger *zap.Logger) DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &dashboardService{orderRepo: orderRepo, logger: logger}
}

// GetDashboard rolls the order collection up into the portfolio views:
// revenue by company, order count by status, the six-month revenue trend and
// the top-5 margin leaderboards. Everything is recomputed from the loaded
// snapshot on every call; an unreachable store degrades to zeroed aggregates
// instead of failing the view.
func (s *dashboardService) GetDashboard(ctx context.Context, startDate, endDate string) (model.DashboardResponse, error) {
	response := model.DashboardResponse{
		TimeRange: model.DashboardFilters{StartDate: startDate, EndDate: endDate},
	}

	orders, err := s.orderRepo.ListByDateRange(ctx, startDate, endDate)
	if err != nil {
		s.logger.Warn("orders unavailable for dashboard", zap.Error(err))
		orders = nil
	}

	response.TotalOrders = len(orders)
	for _, o := range orders {
		e := pricing.ComputeOrderEconomics(o)
		response.TotalRevenue += e.TotalValue
		response.TotalMargin += e.Margin
	}

	companyKey := func(o model.Order) string { return o.SellingCompany }
	statusKey := func(o model.Order) string { return o.Status }
	clientKey := func(o model.Order) string {
		if o.ClientName != "" {
			return o.ClientName
		}
		return o.ClientID
	}
	serviceKey := func(o model.Order) string { return o.ServiceName }

	response.RevenueByCompany = pricing.Breakdown(pricing.AggregateBy(orders, companyKey, pricing.TotalValue))
	response.OrdersByStatus = pricing.Breakdown(pricing.AggregateBy(orders, statusKey, pricing.CountOne))
	response.MonthlyRevenue = pricing.MonthlyTrend(orders, pricing.TotalValue, trendPeriods)
	response.TopClients = pricing.TopN(orders, clientKey, pricing.Margin, leaderboardSize)
	response.TopServices = pricing.TopN(orders, serviceKey, pricing.Margin, leaderboardSize)
	response.TopContractors = pricing.TopN(orders, pricing.ContractorKey, pricing.Margin, leaderboardSize)

	return response, nil
}
