package handler

import (
	"net/http"

	"nexusorder/internal/middleware"
	"nexusorder/internal/model"
	"nexusorder/internal/service"
	"nexusorder/pkg/response"

	"github.com/gin-gonic/gin"
)

type BudgetHandler struct {
	budgetService service.BudgetService
}

func NewBudgetHandler(budgetService service.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

func (h *BudgetHandler) RegisterRoutes(router *gin.RouterGroup) {
	read := middleware.RequireRole(model.RoleAdmin, model.RoleOperations, model.RoleViewer)
	admin := middleware.RequireRole(model.RoleAdmin)

	budget := router.Group("/api/budget")
	{
		budget.GET("/categories", read, h.ListCategories)
		budget.POST("/categories", admin, h.CreateCategory)
		budget.PUT("/categories/:id", admin, h.UpdateCategory)
		budget.DELETE("/categories/:id", admin, h.DeleteCategory)

		budget.GET("/entries", read, h.ListEntries)
		budget.POST("/entries", admin, h.CreateEntry)
		budget.PUT("/entries/:id", admin, h.UpdateEntry)
		budget.DELETE("/entries/:id", admin, h.DeleteEntry)

		budget.GET("/rates", read, h.ListRates)
		budget.PUT("/rates", admin, h.SaveRate)

		budget.GET("/report", read, h.BudgetVsActual)
	}
}

// ListCategories returns the budget categories
// @Summary      List budget categories
// @Tags         budget
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.BudgetCategory}
// @Failure      500  {object}  response.Response
// @Router       /api/budget/categories [get]
func (h *BudgetHandler) ListCategories(c *gin.Context) {
	categories, err := h.budgetService.ListCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, categories))
}

// CreateCategory adds a budget category
// @Summary      Create budget category
// @Tags         budget
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.BudgetCategoryPayload  true  "Budget Category Payload"
// @Success      201      {object}  response.Response{data=model.BudgetCategory}
// @Failure      400      {object}  response.Response
// @Router       /api/budget/categories [post]
func (h *BudgetHandler) CreateCategory(c *gin.Context) {
	var req service.BudgetCategoryPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	category, err := h.budgetService.CreateCategory(c.Request.Context(), identityFromContext(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, category))
}

// UpdateCategory saves a budget category
// @Summary      Update budget category
// @Tags         budget
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                         true  "Category ID"
// @Param        payload  body      service.BudgetCategoryPayload  true  "Budget Category Payload"
// @Success      200      {object}  response.Response{data=model.BudgetCategory}
// @Failure      400      {object}  response.Response
// @Router       /api/budget/categories/{id} [put]
func (h *BudgetHandler) UpdateCategory(c *gin.Context) {
	var req service.BudgetCategoryPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	category, err := h.budgetService.UpdateCategory(c.Request.Context(), identityFromContext(c), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, category))
}

// DeleteCategory removes a budget category
// @Summary      Delete budget category
// @Tags         budget
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Category ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/budget/categories/{id} [delete]
func (h *BudgetHandler) DeleteCategory(c *gin.Context) {
	if err := h.budgetService.DeleteCategory(c.Request.Context(), identityFromContext(c), c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": true}))
}

// ListEntries returns budget entries for the given window
// @Summary      List budget entries
// @Tags         budget
// @Security     BearerAuth
// @Produce      json
// @Param        company     query     string  false  "Selling company"
// @Param        from_month  query     string  false  "Lower month bound (YYYY-MM, inclusive)"
// @Param        to_month    query     string  false  "Upper month bound (YYYY-MM, inclusive)"
// @Success      200         {object}  response.Response{data=[]model.BudgetEntry}
// @Failure      500         {object}  response.Response
// @Router       /api/budget/entries [get]
func (h *BudgetHandler) ListEntries(c *gin.Context) {
	entries, err := h.budgetService.ListEntries(c.Request.Context(), c.Query("company"), c.Query("from_month"), c.Query("to_month"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, entries))
}

// CreateEntry adds a budget entry
// @Summary      Create budget entry
// @Tags         budget
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.BudgetEntryPayload  true  "Budget Entry Payload"
// @Success      201      {object}  response.Response{data=model.BudgetEntry}
// @Failure      400      {object}  response.Response
// @Router       /api/budget/entries [post]
func (h *BudgetHandler) CreateEntry(c *gin.Context) {
	var req service.BudgetEntryPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	entry, err := h.budgetService.SaveEntry(c.Request.Context(), identityFromContext(c), "", req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, entry))
}

// UpdateEntry saves a budget entry
// @Summary      Update budget entry
// @Tags         budget
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                      true  "Budget Entry ID"
// @Param        payload  body      service.BudgetEntryPayload  true  "Budget Entry Payload"
// @Success      200      {object}  response.Response{data=model.BudgetEntry}
// @Failure      400      {object}  response.Response
// @Router       /api/budget/entries/{id} [put]
func (h *BudgetHandler) UpdateEntry(c *gin.Context) {
	var req service.BudgetEntryPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	entry, err := h.budgetService.SaveEntry(c.Request.Context(), identityFromContext(c), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, entry))
}

// DeleteEntry removes a budget entry
// @Summary      Delete budget entry
// @Tags         budget
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Budget Entry ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/budget/entries/{id} [delete]
func (h *BudgetHandler) DeleteEntry(c *gin.Context) {
	if err := h.budgetService.DeleteEntry(c.Request.Context(), identityFromContext(c), c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": true}))
}

// ListRates returns the stored exchange rates
// @Summary      List exchange rates
// @Tags         budget
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.ExchangeRate}
// @Failure      500  {object}  response.Response
// @Router       /api/budget/rates [get]
func (h *BudgetHandler) ListRates(c *gin.Context) {
	rates, err := h.budgetService.ListRates(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rates))
}

// SaveRate upserts an exchange rate for a currency and month
// @Summary      Save exchange rate
// @Tags         budget
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.ExchangeRatePayload  true  "Exchange Rate Payload"
// @Success      200      {object}  response.Response{data=model.ExchangeRate}
// @Failure      400      {object}  response.Response
// @Router       /api/budget/rates [put]
func (h *BudgetHandler) SaveRate(c *gin.Context) {
	var req service.ExchangeRatePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	rate, err := h.budgetService.SaveRate(c.Request.Context(), identityFromContext(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rate))
}

// BudgetVsActual compares planned income against order revenue
// @Summary      Budget vs actual report
// @Description  Joins planned income cells against realized order totals per company and month
// @Tags         budget
// @Security     BearerAuth
// @Produce      json
// @Param        company     query     string  false  "Selling company"
// @Param        from_month  query     string  false  "Lower month bound (YYYY-MM, inclusive)"
// @Param        to_month    query     string  false  "Upper month bound (YYYY-MM, inclusive)"
// @Success      200         {object}  response.Response{data=[]service.BudgetReportRow}
// @Failure      500         {object}  response.Response
// @Router       /api/budget/report [get]
func (h *BudgetHandler) BudgetVsActual(c *gin.Context) {
	rows, err := h.budgetService.BudgetVsActual(c.Request.Context(), c.Query("company"), c.Query("from_month"), c.Query("to_month"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rows))
}
