package middleware

import (
	"net/http"

	"freight-backoffice/pkg/utils"

	"github.com/gin-gonic/gin"
)

// DefaultMaxBodyBytes is used when SERVER_MAX_BODY_BYTES is not positive.
const DefaultMaxBodyBytes int64 = 1 << 20

// RequestSizeLimitMiddleware rejects bodies over maxBytes. Bodies sent without a
// Content-Length are capped while they are read; handlers see *http.MaxBytesError.
func RequestSizeLimitMiddleware(maxBytes int64) gin.HandlerFunc {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}

	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			RespondBodyTooLarge(c)
			c.Abort()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func RespondBodyTooLarge(c *gin.Context) {
	utils.DetailedErrorResponse(c, http.StatusRequestEntityTooLarge, utils.ErrorBody{
		Error: "Request body too large",
		Code:  "BODY_TOO_LARGE",
	})
}
