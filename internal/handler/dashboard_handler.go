package handler

import (
	"net/http"

	"nexusorder/internal/middleware"
	"nexusorder/internal/model"
	"nexusorder/internal/service"
	"nexusorder/pkg/response"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
}

func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	read := middleware.RequireRole(model.RoleAdmin, model.RoleOperations, model.RoleViewer)

	router.GET("/api/dashboard", read, h.GetDashboard)
}

// GetDashboard returns the portfolio aggregates
// @Summary      Get dashboard
// @Description  Returns revenue and margin totals, per-dimension breakdowns, leaderboards, and the recent monthly trend
// @Tags         dashboard
// @Security     BearerAuth
// @Produce      json
// @Param        start_date  query     string  false  "Lower date bound (YYYY-MM-DD, inclusive)"
// @Param        end_date    query     string  false  "Upper date bound (YYYY-MM-DD, inclusive)"
// @Success      200         {object}  response.Response{data=model.DashboardResponse}
// @Failure      500         {object}  response.Response
// @Router       /api/dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	data, err := h.dashboardService.GetDashboard(c.Request.Context(), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, data))
}
