package handler

import (
	"net/http"

	"nexusorder/internal/extract"
	"nexusorder/internal/middleware"
	"nexusorder/internal/model"
	"nexusorder/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ExtractHandler struct {
	extractor extract.Extractor
	logger    *zap.Logger
}

func NewExtractHandler(extractor extract.Extractor, logger *zap.Logger) *ExtractHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExtractHandler{extractor: extractor, logger: logger}
}

func (h *ExtractHandler) RegisterRoutes(router *gin.RouterGroup) {
	write := middleware.RequireRole(model.RoleAdmin, model.RoleOperations)

	router.POST("/api/extract/order", write, h.ExtractOrder)
}

type extractRequest struct {
	Text string `json:"text" binding:"required"`
}

// ExtractOrder guesses order fields from pasted free text
// @Summary      Extract order fields
// @Description  Guesses order fields from pasted free text. Extraction failures return an empty suggestion, never an error: the clerk just keeps typing.
// @Tags         extract
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      extractRequest  true  "Free text"
// @Success      200      {object}  response.Response{data=extract.OrderSuggestion}
// @Failure      400      {object}  response.Response
// @Router       /api/extract/order [post]
func (h *ExtractHandler) ExtractOrder(c *gin.Context) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	suggestion, err := h.extractor.ExtractOrder(c.Request.Context(), req.Text)
	if err != nil || suggestion == nil {
		h.logger.Warn("order extraction failed", zap.Error(err))
		suggestion = &extract.OrderSuggestion{}
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, suggestion))
}
