package handler

import (
	"net/http"

	"freight-backoffice/internal/usecase/shipment"
	"freight-backoffice/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ShipmentHandler struct {
	service *shipment.Service
}

func NewShipmentHandler(service *shipment.Service) *ShipmentHandler {
	return &ShipmentHandler{service: service}
}

func (h *ShipmentHandler) RegisterRoutes(router *gin.RouterGroup) {
	shipments := router.Group("/shipments")
	{
		shipments.POST("", h.CreateShipment)
		shipments.GET("", h.ListShipments)
		shipments.GET("/:id", h.GetShipment)
		shipments.PUT("/:id", h.UpdateShipment)
		shipments.PATCH("/:id/status", h.UpdateStatus)
		shipments.DELETE("/:id", h.DeleteShipment)
	}
}

func (h *ShipmentHandler) CreateShipment(c *gin.Context) {
	var req shipment.CreateShipmentRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Shipment created successfully", result)
}

func (h *ShipmentHandler) GetShipment(c *gin.Context) {
	shipmentID, ok := parseID(c, "shipment")
	if !ok {
		return
	}

	result, err := h.service.Get(c.Request.Context(), shipmentID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Shipment retrieved successfully", result)
}

func (h *ShipmentHandler) ListShipments(c *gin.Context) {
	var filter shipment.ShipmentFilterRequest
	if !bindQuery(c, &filter) {
		return
	}

	result, err := h.service.List(c.Request.Context(), &filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Shipments retrieved successfully", result)
}

func (h *ShipmentHandler) UpdateShipment(c *gin.Context) {
	shipmentID, ok := parseID(c, "shipment")
	if !ok {
		return
	}

	var req shipment.UpdateShipmentRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.service.Update(c.Request.Context(), shipmentID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Shipment updated successfully", result)
}

func (h *ShipmentHandler) UpdateStatus(c *gin.Context) {
	shipmentID, ok := parseID(c, "shipment")
	if !ok {
		return
	}

	var req shipment.UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.service.UpdateStatus(c.Request.Context(), shipmentID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Shipment status updated successfully", result)
}

func (h *ShipmentHandler) DeleteShipment(c *gin.Context) {
	shipmentID, ok := parseID(c, "shipment")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), shipmentID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Shipment deleted successfully", nil)
}
