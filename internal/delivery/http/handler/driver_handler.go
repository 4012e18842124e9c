package handler

import (
	"net/http"

	"freight-backoffice/internal/usecase/driver"
	"freight-backoffice/pkg/utils"

	"github.com/gin-gonic/gin"
)

type DriverHandler struct {
	service *driver.Service
}

func NewDriverHandler(service *driver.Service) *DriverHandler {
	return &DriverHandler{service: service}
}

func (h *DriverHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/drivers")
	{
		group.POST("", h.CreateDriver)
		group.GET("", h.ListDrivers)
		group.GET("/:id", h.GetDriver)
		group.PUT("/:id", h.UpdateDriver)
		group.DELETE("/:id", h.DeleteDriver)
	}
}

func (h *DriverHandler) CreateDriver(c *gin.Context) {
	var req driver.CreateDriverRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Driver created successfully", result)
}

func (h *DriverHandler) GetDriver(c *gin.Context) {
	id, ok := parseID(c, "driver")
	if !ok {
		return
	}

	result, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Driver retrieved successfully", result)
}

func (h *DriverHandler) ListDrivers(c *gin.Context) {
	var filter driver.DriverFilterRequest
	if !bindQuery(c, &filter) {
		return
	}

	result, err := h.service.List(c.Request.Context(), &filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Drivers retrieved successfully", result)
}

func (h *DriverHandler) UpdateDriver(c *gin.Context) {
	id, ok := parseID(c, "driver")
	if !ok {
		return
	}

	var req driver.UpdateDriverRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Driver updated successfully", result)
}

func (h *DriverHandler) DeleteDriver(c *gin.Context) {
	id, ok := parseID(c, "driver")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Driver deleted successfully", nil)
}
