package handler

import (
	"fmt"
	"net/http"

	"freight-backoffice/internal/report"
	"freight-backoffice/internal/report/render"
	"freight-backoffice/internal/usecase/reporting"
	appErrors "freight-backoffice/pkg/errors"
	"freight-backoffice/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	service *reporting.Service
}

func NewReportHandler(service *reporting.Service) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	reports := router.Group("/reports")
	{
		reports.GET("/commissions", h.CommissionReport)
		reports.GET("/invoices/:id", h.InvoiceReport)
	}
}

func (h *ReportHandler) CommissionReport(c *gin.Context) {
	var req reporting.CommissionReportRequest
	if !bindQuery(c, &req) {
		return
	}

	format, err := parseFormat(req.Format)
	if err != nil {
		respondWithError(c, err)
		return
	}

	r, err := h.service.CommissionReport(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.send(c, r, format, "Commission report generated successfully")
}

func (h *ReportHandler) InvoiceReport(c *gin.Context) {
	invoiceID, ok := parseID(c, "invoice")
	if !ok {
		return
	}

	var req reporting.InvoiceReportRequest
	if !bindQuery(c, &req) {
		return
	}

	format, err := parseFormat(req.Format)
	if err != nil {
		respondWithError(c, err)
		return
	}

	r, err := h.service.InvoiceReport(c.Request.Context(), invoiceID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.send(c, r, format, "Invoice report generated successfully")
}

func (h *ReportHandler) send(c *gin.Context, r *report.Report, format render.Format, message string) {
	if format == render.FormatJSON {
		utils.SuccessResponse(c, http.StatusOK, message, r)
		return
	}

	doc, err := h.service.Render(r, format)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	c.Data(http.StatusOK, doc.ContentType, doc.Body)
}

func parseFormat(value string) (render.Format, error) {
	format, err := render.ParseFormat(value)
	if err != nil {
		return "", appErrors.NewValidationError("INVALID_FORMAT", err.Error(), err)
	}
	return format, nil
}
