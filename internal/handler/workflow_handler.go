package handler

import (
	"net/http"

	"nexusorder/internal/middleware"
	"nexusorder/internal/model"
	"nexusorder/internal/service"
	"nexusorder/pkg/response"

	"github.com/gin-gonic/gin"
)

type WorkflowHandler struct {
	workflowService service.WorkflowService
}

func NewWorkflowHandler(workflowService service.WorkflowService) *WorkflowHandler {
	return &WorkflowHandler{workflowService: workflowService}
}

func (h *WorkflowHandler) RegisterRoutes(router *gin.RouterGroup) {
	read := middleware.RequireRole(model.RoleAdmin, model.RoleOperations, model.RoleViewer)
	admin := middleware.RequireRole(model.RoleAdmin)

	statuses := router.Group("/api/workflow/statuses")
	{
		statuses.GET("", read, h.ListStatuses)
		statuses.POST("", admin, h.CreateStatus)
		statuses.PUT("/:id", admin, h.UpdateStatus)
		statuses.DELETE("/:id", admin, h.DeleteStatus)
	}
}

// ListStatuses returns the workflow states in board order
// @Summary      List workflow statuses
// @Tags         workflow
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.WorkflowStatus}
// @Failure      500  {object}  response.Response
// @Router       /api/workflow/statuses [get]
func (h *WorkflowHandler) ListStatuses(c *gin.Context) {
	statuses, err := h.workflowService.ListOrdered(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, statuses))
}

// CreateStatus adds a workflow state
// @Summary      Create workflow status
// @Tags         workflow
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.WorkflowStatusPayload  true  "Workflow Status Payload"
// @Success      201      {object}  response.Response{data=model.WorkflowStatus}
// @Failure      400      {object}  response.Response
// @Router       /api/workflow/statuses [post]
func (h *WorkflowHandler) CreateStatus(c *gin.Context) {
	var req service.WorkflowStatusPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	status, err := h.workflowService.Create(c.Request.Context(), identityFromContext(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, status))
}

// UpdateStatus saves a workflow state
// @Summary      Update workflow status
// @Tags         workflow
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                         true  "Workflow Status ID"
// @Param        payload  body      service.WorkflowStatusPayload  true  "Workflow Status Payload"
// @Success      200      {object}  response.Response{data=model.WorkflowStatus}
// @Failure      400      {object}  response.Response
// @Router       /api/workflow/statuses/{id} [put]
func (h *WorkflowHandler) UpdateStatus(c *gin.Context) {
	var req service.WorkflowStatusPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	status, err := h.workflowService.Update(c.Request.Context(), identityFromContext(c), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, status))
}

// DeleteStatus removes a workflow state
// @Summary      Delete workflow status
// @Tags         workflow
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Workflow Status ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/workflow/statuses/{id} [delete]
func (h *WorkflowHandler) DeleteStatus(c *gin.Context) {
	if err := h.workflowService.Delete(c.Request.Context(), identityFromContext(c), c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": true}))
}
