package handler

import (
	"errors"
	"net/http"

	"freight-backoffice/internal/middleware"
	appErrors "freight-backoffice/pkg/errors"
	"freight-backoffice/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type sagaDetails struct {
	Operation string   `json:"operation"`
	Step      string   `json:"step"`
	Completed []string `json:"completed"`
	InvoiceID string   `json:"invoiceId,omitempty"`
}

func respondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var sagaErr *appErrors.SagaError
	if errors.As(err, &sagaErr) {
		logError(c, "Operation left incomplete", err,
			zap.String("operation", sagaErr.Operation),
			zap.String("step", sagaErr.Step),
			zap.String("entity_id", sagaErr.EntityID),
		)
		utils.DetailedErrorResponse(c, http.StatusInternalServerError, utils.ErrorBody{
			Error: "Operation did not complete",
			Code:  "SAGA_INCOMPLETE",
			Details: sagaDetails{
				Operation: sagaErr.Operation,
				Step:      sagaErr.Step,
				Completed: sagaErr.Completed,
				InvoiceID: sagaErr.EntityID,
			},
		})
		return
	}

	var appErr *appErrors.AppError
	if errors.As(err, &appErr) {
		body := utils.ErrorBody{
			Error:     appErr.Message,
			Code:      appErr.Code,
			Retryable: appErr.Retryable,
		}
		if len(appErr.Details) > 0 {
			body.Details = appErr.Details
		}

		switch appErr.Kind {
		case appErrors.KindValidation:
			utils.DetailedErrorResponse(c, http.StatusBadRequest, body)
			return
		case appErrors.KindNotFound:
			utils.DetailedErrorResponse(c, http.StatusNotFound, body)
			return
		case appErrors.KindConflict:
			utils.DetailedErrorResponse(c, http.StatusConflict, body)
			return
		}
	}

	logError(c, "Internal server error", err)
	utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
}

func logError(c *gin.Context, msg string, err error, fields ...zap.Field) {
	middleware.RequestLogger(c).Error(msg, append([]zap.Field{zap.Error(err)}, fields...)...)
}

// parseID reads the :id path parameter and writes a 400 when it is not a UUID.
func parseID(c *gin.Context, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.DetailedErrorResponse(c, http.StatusBadRequest, utils.ErrorBody{
			Error: "Invalid " + what + " ID",
			Code:  "INVALID_ID",
		})
		return uuid.Nil, false
	}
	return id, true
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			middleware.RespondBodyTooLarge(c)
			return false
		}
		utils.DetailedErrorResponse(c, http.StatusBadRequest, utils.ErrorBody{
			Error: "Invalid request body",
			Code:  "INVALID_BODY",
		})
		return false
	}
	return true
}

func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		utils.DetailedErrorResponse(c, http.StatusBadRequest, utils.ErrorBody{
			Error: "Invalid query parameters",
			Code:  "INVALID_QUERY",
		})
		return false
	}
	return true
}
