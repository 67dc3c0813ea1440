package handler

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"nexusorder/internal/export"
	"nexusorder/internal/middleware"
	"nexusorder/internal/model"
	"nexusorder/internal/pricing"
	"nexusorder/internal/service"
	"nexusorder/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	pdfContentType  = "application/pdf"

	exportLimit = 1_000_000
)

type ExportHandler struct {
	orderService service.OrderService
}

func NewExportHandler(orderService service.OrderService) *ExportHandler {
	return &ExportHandler{orderService: orderService}
}

func (h *ExportHandler) RegisterRoutes(router *gin.RouterGroup) {
	read := middleware.RequireRole(model.RoleAdmin, model.RoleOperations, model.RoleViewer)

	router.GET("/api/export/orders.xlsx", read, h.ExportOrdersXLSX)
	router.GET("/api/orders/:id/sheet.pdf", read, h.ExportOrderPDF)
}

// ExportOrdersXLSX downloads the filtered portfolio as a spreadsheet
// @Summary      Export orders as XLSX
// @Description  Renders the orders matching the current filters into a two-sheet workbook
// @Tags         export
// @Security     BearerAuth
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        search     query  string  false  "Free text filter"
// @Param        companies  query  string  false  "Comma-separated selling companies"
// @Param        statuses   query  string  false  "Comma-separated workflow statuses"
// @Success      200  {file}  binary
// @Failure      500  {object}  response.Response
// @Router       /api/export/orders.xlsx [get]
func (h *ExportHandler) ExportOrdersXLSX(c *gin.Context) {
	q := service.OrderListQuery{
		Filter: pricing.ListFilter{
			Search:    c.Query("search"),
			Companies: splitCSV(c.Query("companies")),
			Statuses:  splitCSV(c.Query("statuses")),
		},
		SortBy: pricing.SortByDate,
		Page:   1,
		// exports cover the whole filtered collection, not one page
		Limit: exportLimit,
	}

	responses, _, err := h.orderService.ListOrders(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	orders := make([]model.Order, 0, len(responses))
	for _, r := range responses {
		orders = append(orders, r.Order)
	}

	reader, err := export.OrdersWorkbook(orders)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	filename := fmt.Sprintf("orders-%s.xlsx", time.Now().Format("2006-01-02"))
	streamDownload(c, reader, filename, xlsxContentType)
}

// ExportOrderPDF downloads a single order as a printable sheet
// @Summary      Export order as PDF
// @Tags         export
// @Security     BearerAuth
// @Produce      application/pdf
// @Param        id   path  string  true  "Order ID"
// @Success      200  {file}  binary
// @Failure      404  {object}  response.Response
// @Router       /api/orders/{id}/sheet.pdf [get]
func (h *ExportHandler) ExportOrderPDF(c *gin.Context) {
	order, err := h.orderService.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Order not found"))
		return
	}

	reader, err := export.OrderSheet(&order.Order)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	filename := fmt.Sprintf("order-%s.pdf", order.ID.String())
	streamDownload(c, reader, filename, pdfContentType)
}

func streamDownload(c *gin.Context, reader io.Reader, filename, contentType string) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, reader)
}
