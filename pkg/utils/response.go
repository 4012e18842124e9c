package utils

import (
	"github.com/gin-gonic/gin"
)

// ErrorCodeKey is the gin context key that holds the code of the error response
// written for the request.
const ErrorCodeKey = "error_code"

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorBody struct {
	Success   bool        `json:"success"`
	Error     string      `json:"error"`
	Code      string      `json:"code,omitempty"`
	Retryable bool        `json:"retryable,omitempty"`
	Details   interface{} `json:"details,omitempty"`
}

func SuccessResponse(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorBody{
		Success: false,
		Error:   message,
	})
}

// DetailedErrorResponse writes an error body carrying a machine-readable code.
func DetailedErrorResponse(c *gin.Context, status int, body ErrorBody) {
	body.Success = false
	if body.Code != "" {
		c.Set(ErrorCodeKey, body.Code)
	}
	c.JSON(status, body)
}
