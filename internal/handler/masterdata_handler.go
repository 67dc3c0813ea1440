package handler

import (
	"net/http"

	"nexusorder/internal/middleware"
	"nexusorder/internal/model"
	"nexusorder/internal/service"
	"nexusorder/pkg/response"

	"github.com/gin-gonic/gin"
)

// MasterDataHandler serves the reference catalogs behind order entry:
// clients, contractors, selling companies, units of measure, and the service
// catalog. All five share the same CRUD shape, so the routes are wired
// through one generic helper.
type MasterDataHandler struct {
	clients     service.MasterDataService[model.Client]
	contractors service.MasterDataService[model.Contractor]
	companies   service.MasterDataService[model.Company]
	units       service.MasterDataService[model.UnitOfMeasure]
	services    service.MasterDataService[model.ServiceCatalogItem]
}

func NewMasterDataHandler(
	clients service.MasterDataService[model.Client],
	contractors service.MasterDataService[model.Contractor],
	companies service.MasterDataService[model.Company],
	units service.MasterDataService[model.UnitOfMeasure],
	services service.MasterDataService[model.ServiceCatalogItem],
) *MasterDataHandler {
	return &MasterDataHandler{
		clients:     clients,
		contractors: contractors,
		companies:   companies,
		units:       units,
		services:    services,
	}
}

func (h *MasterDataHandler) RegisterRoutes(router *gin.RouterGroup) {
	registerCRUD(router, "/api/clients", h.clients)
	registerCRUD(router, "/api/contractors", h.contractors)
	registerCRUD(router, "/api/companies", h.companies)
	registerCRUD(router, "/api/units", h.units)
	registerCRUD(router, "/api/services", h.services)
}

func registerCRUD[T any](router *gin.RouterGroup, path string, svc service.MasterDataService[T]) {
	read := middleware.RequireRole(model.RoleAdmin, model.RoleOperations, model.RoleViewer)
	write := middleware.RequireRole(model.RoleAdmin, model.RoleOperations)

	group := router.Group(path)
	{
		group.GET("", read, listRecords(svc))
		group.GET("/:id", read, getRecord(svc))
		group.POST("", write, createRecord(svc))
		group.PUT("/:id", write, updateRecord(svc))
		group.DELETE("/:id", write, deleteRecord(svc))
	}
}

func listRecords[T any](svc service.MasterDataService[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		records, err := svc.ListAll(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.Success(http.StatusOK, records))
	}
}

func getRecord[T any](svc service.MasterDataService[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		record, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.Success(http.StatusOK, record))
	}
}

func createRecord[T any](svc service.MasterDataService[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		var record T
		if err := c.ShouldBindJSON(&record); err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
			return
		}

		created, err := svc.Create(c.Request.Context(), identityFromContext(c), &record)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
			return
		}
		c.JSON(http.StatusCreated, response.Success(http.StatusCreated, created))
	}
}

func updateRecord[T any](svc service.MasterDataService[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		var record T
		if err := c.ShouldBindJSON(&record); err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
			return
		}

		updated, err := svc.Update(c.Request.Context(), identityFromContext(c), c.Param("id"), &record)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.Success(http.StatusOK, updated))
	}
}

func deleteRecord[T any](svc service.MasterDataService[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), identityFromContext(c), c.Param("id")); err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": true}))
	}
}
