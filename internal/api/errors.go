package api

import (
	"errors"   // Sentinel matching
	"net/http" // HTTP status codes

	"fastpay/internal/domain"     // Domain errors
	"fastpay/internal/middleware" // Request id key

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// statusFor maps a domain error to the HTTP status and message shown to clients
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest, "Invalid amount"
	case errors.Is(err, domain.ErrInsufficientBalance):
		return http.StatusBadRequest, "Insufficient balance"
	case errors.Is(err, domain.ErrInvalidRecipient):
		return http.StatusBadRequest, "Cannot transfer to yourself"
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, "Invalid request"
	case errors.Is(err, domain.ErrAccountExists):
		return http.StatusBadRequest, "User already exists"
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusBadRequest, "Invalid credentials"
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusBadRequest, "Invalid token"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "Forbidden"
	default:
		// Store and internal failures look the same to clients
		return http.StatusInternalServerError, "Server error"
	}
}

// respondError writes err as {"message": ...} and logs server-side failures with their kind
func respondError(c *gin.Context, log logrus.FieldLogger, err error) {
	status, message := statusFor(err)
	entry := log.WithFields(logrus.Fields{
		"request_id": c.GetString(middleware.RequestIDKey), // Correlates with the request log
		"kind":       domain.KindOf(err).String(),          // Store vs internal
		"error":      err.Error(),
	})
	if status >= http.StatusInternalServerError {
		entry.Error("Request error")
	} else {
		entry.Debug("Request rejected")
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"message": message})
}

// badRequest answers a body that failed to bind
func badRequest(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
}
