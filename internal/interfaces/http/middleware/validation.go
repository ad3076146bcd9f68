package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopops/backend/internal/interfaces/http/dto"
)

// RequestIDKey is the gin context key holding the request ID
const RequestIDKey = "request_id"

// RequestIDHeader carries the request ID on requests and responses
const RequestIDHeader = "X-Request-ID"

// SetupValidator configures the validator with custom tags
func SetupValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		// Use JSON tag names for field names in errors
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			return name
		})
	}
}

// FormatValidationErrors formats binding errors into a standard response
func FormatValidationErrors(err error, requestID string) dto.Response {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		resp := dto.NewErrorResponseWithRequestID(dto.ErrCodeInvalidJSON, "Corp JSON invalid", requestID)
		return resp
	}

	details := make([]dto.ValidationDetail, 0, len(validationErrors))
	for _, e := range validationErrors {
		details = append(details, dto.ValidationDetail{
			Field:   e.Field(),
			Message: getValidationMessage(e),
			Code:    e.Tag(),
		})
	}
	return dto.NewValidationErrorResponse("Date invalide", requestID, details)
}

// HandleValidationError returns a 400 validation error response, or 413 when
// the body was cut off by BodyLimit
func HandleValidationError(c *gin.Context, err error) {
	if isBodyTooLarge(err) {
		abortTooLarge(c)
		return
	}
	c.JSON(http.StatusBadRequest, FormatValidationErrors(err, getRequestIDFromContext(c)))
}

// getRequestIDFromContext extracts request ID from gin context
func getRequestIDFromContext(c *gin.Context) string {
	if id := c.GetString(RequestIDKey); id != "" {
		return id
	}
	return c.GetHeader(RequestIDHeader)
}

// getValidationMessage returns a human-readable validation message
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "Câmp obligatoriu"
	case "email":
		return "Email invalid"
	case "min":
		if e.Type().Kind() == reflect.String {
			return "Minim " + e.Param() + " caractere"
		}
		return "Valoarea minimă este " + e.Param()
	case "max":
		if e.Type().Kind() == reflect.String {
			return "Maxim " + e.Param() + " caractere"
		}
		return "Valoarea maximă este " + e.Param()
	case "uuid":
		return "Identificator invalid"
	case "oneof":
		return "Valori permise: " + e.Param()
	case "gte":
		return "Trebuie să fie cel puțin " + e.Param()
	case "lte":
		return "Trebuie să fie cel mult " + e.Param()
	case "url":
		return "URL invalid"
	default:
		return "Valoare invalidă"
	}
}
