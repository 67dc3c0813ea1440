package handler

import (
	"net/http"

	"nexusorder/internal/middleware"
	"nexusorder/internal/model"
	"nexusorder/internal/service"
	"nexusorder/pkg/pagination"
	"nexusorder/pkg/response"

	"github.com/gin-gonic/gin"
)

type PriceListHandler struct {
	priceService service.PriceListService
}

func NewPriceListHandler(priceService service.PriceListService) *PriceListHandler {
	return &PriceListHandler{priceService: priceService}
}

func (h *PriceListHandler) RegisterRoutes(router *gin.RouterGroup) {
	read := middleware.RequireRole(model.RoleAdmin, model.RoleOperations, model.RoleViewer)
	write := middleware.RequireRole(model.RoleAdmin, model.RoleOperations)

	prices := router.Group("/api/prices")
	{
		prices.POST("", write, h.CreateEntry)
		prices.GET("", read, h.ListEntries)
		prices.PUT("/:id", write, h.UpdateEntry)
		prices.DELETE("/:id", write, h.DeleteEntry)
		prices.GET("/resolve", read, h.Resolve)
	}
}

// CreateEntry adds a price list entry
// @Summary      Create price entry
// @Tags         prices
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.PriceEntryPayload  true  "Price Entry Payload"
// @Success      201      {object}  response.Response{data=model.PriceListEntry}
// @Failure      400      {object}  response.Response
// @Router       /api/prices [post]
func (h *PriceListHandler) CreateEntry(c *gin.Context) {
	var req service.PriceEntryPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	entry, err := h.priceService.Create(c.Request.Context(), identityFromContext(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, entry))
}

// ListEntries returns the price catalog page by page
// @Summary      List price entries
// @Tags         prices
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Number of items per page (default 50)"
// @Success      200    {object}  response.Response{data=response.Page}
// @Failure      500    {object}  response.Response
// @Router       /api/prices [get]
func (h *PriceListHandler) ListEntries(c *gin.Context) {
	p := pagination.Parse(c)

	entries, total, err := h.priceService.List(c.Request.Context(), p.Page, p.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, entries, total, p.Page, p.Limit))
}

// UpdateEntry saves a price list entry
// @Summary      Update price entry
// @Tags         prices
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                     true  "Price Entry ID"
// @Param        payload  body      service.PriceEntryPayload  true  "Price Entry Payload"
// @Success      200      {object}  response.Response{data=model.PriceListEntry}
// @Failure      400      {object}  response.Response
// @Router       /api/prices/{id} [put]
func (h *PriceListHandler) UpdateEntry(c *gin.Context) {
	var req service.PriceEntryPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	entry, err := h.priceService.Update(c.Request.Context(), identityFromContext(c), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, entry))
}

// DeleteEntry removes a price list entry
// @Summary      Delete price entry
// @Tags         prices
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Price Entry ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/prices/{id} [delete]
func (h *PriceListHandler) DeleteEntry(c *gin.Context) {
	if err := h.priceService.Delete(c.Request.Context(), identityFromContext(c), c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": true}))
}

// Resolve returns the price entries applicable to an order being typed
// @Summary      Resolve eligible prices
// @Description  Filters the catalog by company, client, contractor, and date; optionally returns the auto-fill pick for a service name
// @Tags         prices
// @Security     BearerAuth
// @Produce      json
// @Param        selling_company  query     string  true   "Selling company"
// @Param        client_id        query     string  false  "Client ID"
// @Param        contractor_id    query     string  false  "Contractor ID"
// @Param        as_of_date       query     string  true   "Order date (YYYY-MM-DD)"
// @Param        service_name     query     string  false  "Service name for the auto-fill pick"
// @Success      200              {object}  response.Response{data=service.ResolveResponse}
// @Failure      400              {object}  response.Response
// @Router       /api/prices/resolve [get]
func (h *PriceListHandler) Resolve(c *gin.Context) {
	var req service.ResolveRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid query: "+err.Error()))
		return
	}

	result, err := h.priceService.Resolve(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}
