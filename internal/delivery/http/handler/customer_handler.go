package handler

import (
	"net/http"

	"freight-backoffice/internal/usecase/customer"
	"freight-backoffice/pkg/utils"

	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	service *customer.Service
}

func NewCustomerHandler(service *customer.Service) *CustomerHandler {
	return &CustomerHandler{service: service}
}

func (h *CustomerHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/customers")
	{
		group.POST("", h.CreateCustomer)
		group.GET("", h.ListCustomers)
		group.GET("/:id", h.GetCustomer)
		group.PUT("/:id", h.UpdateCustomer)
		group.DELETE("/:id", h.DeleteCustomer)
		group.GET("/:id/stats", h.GetCustomerStats)
	}
}

func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req customer.CreateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Customer created successfully", result)
}

func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	id, ok := parseID(c, "customer")
	if !ok {
		return
	}

	result, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Customer retrieved successfully", result)
}

func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	var filter customer.CustomerFilterRequest
	if !bindQuery(c, &filter) {
		return
	}

	result, err := h.service.List(c.Request.Context(), &filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Customers retrieved successfully", result)
}

func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	id, ok := parseID(c, "customer")
	if !ok {
		return
	}

	var req customer.UpdateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Customer updated successfully", result)
}

func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	id, ok := parseID(c, "customer")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Customer deleted successfully", nil)
}

func (h *CustomerHandler) GetCustomerStats(c *gin.Context) {
	id, ok := parseID(c, "customer")
	if !ok {
		return
	}

	stats, err := h.service.Stats(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Customer statistics retrieved successfully", stats)
}
