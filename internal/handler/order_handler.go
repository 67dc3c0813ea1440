package handler

import (
	"net/http"
	"strings"

	"nexusorder/internal/middleware"
	"nexusorder/internal/model"
	"nexusorder/internal/pricing"
	"nexusorder/internal/service"
	"nexusorder/pkg/pagination"
	"nexusorder/pkg/response"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup) {
	read := middleware.RequireRole(model.RoleAdmin, model.RoleOperations, model.RoleViewer)
	write := middleware.RequireRole(model.RoleAdmin, model.RoleOperations)

	orders := router.Group("/api/orders")
	{
		orders.POST("", write, h.CreateOrder)
		orders.GET("", read, h.ListOrders)
		orders.GET("/:id", read, h.GetOrder)
		orders.PUT("/:id", write, h.UpdateOrder)
		orders.DELETE("/:id", write, h.DeleteOrder)

		orders.POST("/:id/progress", write, h.AddProgressLog)
		orders.PUT("/:id/progress/:logId", write, h.UpdateProgressLog)
		orders.DELETE("/:id/progress/:logId", write, h.DeleteProgressLog)

		orders.POST("/:id/attachments", write, h.AddAttachment)
		orders.DELETE("/:id/attachments/:attId", write, h.DeleteAttachment)
	}
}

// CreateOrder registers a new sales order
// @Summary      Create order
// @Description  Creates a new sales order; missing prices are filled from the price list when possible
// @Tags         orders
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.OrderPayload  true  "Order Payload"
// @Success      201      {object}  response.Response{data=service.OrderResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req service.OrderPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), identityFromContext(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, order))
}

// ListOrders returns the filtered, sorted order list
// @Summary      List orders
// @Description  Returns orders matching the free-text search and the selected company/status filters
// @Tags         orders
// @Security     BearerAuth
// @Produce      json
// @Param        search     query     string  false  "Free text matched against client, service, PO number, contractor, and id"
// @Param        companies  query     string  false  "Comma-separated selling companies"
// @Param        statuses   query     string  false  "Comma-separated workflow statuses"
// @Param        sort_by    query     string  false  "Sort column (date, client, service, total, status, progress, ...)"
// @Param        order      query     string  false  "asc or desc (default desc)"
// @Param        page       query     int     false  "Page number (default 1)"
// @Param        limit      query     int     false  "Number of items per page (default 50)"
// @Success      200        {object}  response.Response{data=response.Page}
// @Failure      500        {object}  response.Response
// @Router       /api/orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	p := pagination.Parse(c)

	q := service.OrderListQuery{
		Filter: pricing.ListFilter{
			Search:    c.Query("search"),
			Companies: splitCSV(c.Query("companies")),
			Statuses:  splitCSV(c.Query("statuses")),
		},
		SortBy:    c.DefaultQuery("sort_by", pricing.SortByDate),
		Ascending: c.DefaultQuery("order", "desc") == "asc",
		Page:      p.Page,
		Limit:     p.Limit,
	}

	orders, total, err := h.orderService.ListOrders(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, orders, total, p.Page, p.Limit))
}

// GetOrder returns one order with its history, attachments, and progress
// @Summary      Get order
// @Tags         orders
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  response.Response{data=service.OrderResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orderService.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Order not found"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, order))
}

// UpdateOrder saves the whole order record
// @Summary      Update order
// @Description  Saves the order; a status change is recorded in the order history
// @Tags         orders
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                true  "Order ID"
// @Param        payload  body      service.OrderPayload  true  "Order Payload"
// @Success      200      {object}  response.Response{data=service.OrderResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/orders/{id} [put]
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	var req service.OrderPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	order, err := h.orderService.UpdateOrder(c.Request.Context(), identityFromContext(c), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, order))
}

// DeleteOrder removes an order and its children
// @Summary      Delete order
// @Tags         orders
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/orders/{id} [delete]
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	if err := h.orderService.DeleteOrder(c.Request.Context(), identityFromContext(c), c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": true}))
}

// AddProgressLog appends a production progress entry
// @Summary      Add progress log
// @Tags         orders
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                      true  "Order ID"
// @Param        payload  body      service.ProgressLogPayload  true  "Progress Log Payload"
// @Success      200      {object}  response.Response{data=service.OrderResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/orders/{id}/progress [post]
func (h *OrderHandler) AddProgressLog(c *gin.Context) {
	var req service.ProgressLogPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	order, err := h.orderService.AddProgressLog(c.Request.Context(), identityFromContext(c), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, order))
}

// UpdateProgressLog edits an existing progress entry
// @Summary      Update progress log
// @Tags         orders
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                      true  "Order ID"
// @Param        logId    path      string                      true  "Progress Log ID"
// @Param        payload  body      service.ProgressLogPayload  true  "Progress Log Payload"
// @Success      200      {object}  response.Response{data=service.OrderResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/orders/{id}/progress/{logId} [put]
func (h *OrderHandler) UpdateProgressLog(c *gin.Context) {
	var req service.ProgressLogPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	order, err := h.orderService.UpdateProgressLog(c.Request.Context(), identityFromContext(c), c.Param("id"), c.Param("logId"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, order))
}

// DeleteProgressLog removes a progress entry
// @Summary      Delete progress log
// @Tags         orders
// @Security     BearerAuth
// @Produce      json
// @Param        id     path      string  true  "Order ID"
// @Param        logId  path      string  true  "Progress Log ID"
// @Success      200    {object}  response.Response{data=service.OrderResponse}
// @Failure      400    {object}  response.Response
// @Router       /api/orders/{id}/progress/{logId} [delete]
func (h *OrderHandler) DeleteProgressLog(c *gin.Context) {
	order, err := h.orderService.DeleteProgressLog(c.Request.Context(), identityFromContext(c), c.Param("id"), c.Param("logId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, order))
}

// AddAttachment links a document to the order
// @Summary      Add attachment
// @Tags         orders
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                     true  "Order ID"
// @Param        payload  body      service.AttachmentPayload  true  "Attachment Payload"
// @Success      200      {object}  response.Response{data=service.OrderResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/orders/{id}/attachments [post]
func (h *OrderHandler) AddAttachment(c *gin.Context) {
	var req service.AttachmentPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	order, err := h.orderService.AddAttachment(c.Request.Context(), identityFromContext(c), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, order))
}

// DeleteAttachment unlinks a document from the order
// @Summary      Delete attachment
// @Tags         orders
// @Security     BearerAuth
// @Produce      json
// @Param        id     path      string  true  "Order ID"
// @Param        attId  path      string  true  "Attachment ID"
// @Success      200    {object}  response.Response{data=service.OrderResponse}
// @Failure      400    {object}  response.Response
// @Router       /api/orders/{id}/attachments/{attId} [delete]
func (h *OrderHandler) DeleteAttachment(c *gin.Context) {
	order, err := h.orderService.DeleteAttachment(c.Request.Context(), identityFromContext(c), c.Param("id"), c.Param("attId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, order))
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
