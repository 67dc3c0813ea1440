package model

// DashboardResponse aggregates portfolio totals and leaderboard data for the
// main dashboard. Everything here is recomputed from the order collection on
// every request, never cached or incrementally maintained.
type DashboardResponse struct {
	TotalRevenue     float64          `json:"total_revenue"`
	TotalMargin      float64          `json:"total_margin"`
	TotalOrders      int              `json:"total_orders"`
	RevenueByCompany []RankedEntry    `json:"revenue_by_company"`
	OrdersByStatus   []RankedEntry    `json:"orders_by_status"`
	MonthlyRevenue   []TrendPoint     `json:"monthly_revenue"`
	TopClients       []RankedEntry    `json:"top_clients_by_margin"`
	TopServices      []RankedEntry    `json:"top_services_by_margin"`
	TopContractors   []RankedEntry    `json:"top_contractors_by_margin"`
	TimeRange        DashboardFilters `json:"time_range"`
}

// RankedEntry is one labeled value in a leaderboard or breakdown
type RankedEntry struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
}

// TrendPoint is a single "YYYY-MM" bucket in the revenue trend
type TrendPoint struct {
	Month string  `json:"month"`
	Value float64 `json:"value"`
}

// DashboardFilters echoes back the applied date window
type DashboardFilters struct {
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}
