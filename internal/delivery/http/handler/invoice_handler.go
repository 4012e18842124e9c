package handler

import (
	"net/http"

	"freight-backoffice/internal/usecase/invoice"
	"freight-backoffice/pkg/utils"

	"github.com/gin-gonic/gin"
)

type InvoiceHandler struct {
	service *invoice.Service
}

func NewInvoiceHandler(service *invoice.Service) *InvoiceHandler {
	return &InvoiceHandler{service: service}
}

func (h *InvoiceHandler) RegisterRoutes(router *gin.RouterGroup) {
	invoices := router.Group("/invoices")
	{
		invoices.POST("", h.CreateInvoice)
		invoices.GET("", h.ListInvoices)
		invoices.GET("/next-number", h.NextNumber)
		invoices.GET("/number/:number", h.GetInvoiceByNumber)
		invoices.GET("/:id", h.GetInvoice)
		invoices.PATCH("/:id", h.UpdateInvoice)
	}
}

func (h *InvoiceHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	router.DELETE("/invoices/:id", h.DeleteInvoice)
}

func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var req invoice.CreateInvoiceRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.service.CreateFromShipments(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Invoice created successfully", result)
}

func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	invoiceID, ok := parseID(c, "invoice")
	if !ok {
		return
	}

	result, err := h.service.Get(c.Request.Context(), invoiceID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Invoice retrieved successfully", result)
}

func (h *InvoiceHandler) GetInvoiceByNumber(c *gin.Context) {
	result, err := h.service.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Invoice retrieved successfully", result)
}

func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	var filter invoice.InvoiceFilterRequest
	if !bindQuery(c, &filter) {
		return
	}

	result, err := h.service.List(c.Request.Context(), &filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Invoices retrieved successfully", result)
}

func (h *InvoiceHandler) UpdateInvoice(c *gin.Context) {
	invoiceID, ok := parseID(c, "invoice")
	if !ok {
		return
	}

	var req invoice.UpdateInvoiceRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.service.Update(c.Request.Context(), invoiceID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Invoice updated successfully", result)
}

func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	invoiceID, ok := parseID(c, "invoice")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), invoiceID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Invoice deleted successfully", nil)
}

func (h *InvoiceHandler) NextNumber(c *gin.Context) {
	result, err := h.service.PreviewNextNumber(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Next invoice number", result)
}
