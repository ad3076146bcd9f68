package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopops/backend/internal/interfaces/http/dto"
)

const msgPayloadTooLarge = "Cererea depășește dimensiunea maximă permisă"

// BodyLimit rejects declared oversize bodies up front and caps the rest with
// http.MaxBytesReader. A capped body surfaces as *http.MaxBytesError when a
// handler binds it; HandleValidationError answers that with 413.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			abortTooLarge(c)
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func abortTooLarge(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
		dto.NewErrorResponseWithRequestID(dto.ErrCodePayloadTooLarge, msgPayloadTooLarge, getRequestIDFromContext(c)))
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
