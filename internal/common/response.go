package common

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Dispatched sends the success response carrying the delivery receipt.
func Dispatched(c *gin.Context, messageID string) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"messageId": messageID,
	})
}

// IncompletePayload sends the 400 response listing every missing field.
func IncompletePayload(c *gin.Context, missingFields []string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":         "incomplete payload",
		"missingFields": missingFields,
	})
}

// InvalidPayload sends a 400 response for a body that could not be parsed.
func InvalidPayload(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
}

// Unauthorized sends the 401 response.
func Unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
}

// MethodNotAllowed sends the 405 response for non-POST, non-OPTIONS methods.
func MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
}

// NotFound sends the 404 response.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
}

// DispatchFailed sends the 500 response with a stable error category, the
// provider's diagnostic code, and a human-readable detail string.
func DispatchFailed(c *gin.Context, category, code, details string) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error":   category,
		"details": details,
		"code":    code,
	})
}

// HandleError inspects a domain error and sends the appropriate HTTP response.
// Uses errors.As to traverse the full error chain, supporting wrapped errors.
func HandleError(c *gin.Context, err error) {
	var validation *ValidationError
	var unauthorized *UnauthorizedError
	var config *ConfigError
	var delivery *DeliveryError

	switch {
	case errors.As(err, &validation):
		IncompletePayload(c, validation.MissingFields)
	case errors.As(err, &unauthorized):
		Unauthorized(c)
	case errors.As(err, &config):
		DispatchFailed(c, CategoryConfiguration, config.Code, config.Detail)
	case errors.As(err, &delivery):
		DispatchFailed(c, CategoryDelivery, delivery.Code, delivery.Detail)
	default:
		DispatchFailed(c, CategoryDelivery, CodeUnknown, "internal server error")
	}
}
