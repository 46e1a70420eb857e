package middleware

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

// OwnerOnlyMiddleware rejects requests whose path parameter param does not
// name the caller's own payment id. Must run after JWTAuthMiddleware.
func OwnerOnlyMiddleware(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := CallerPaymentID(c) // Set by JWTAuthMiddleware
		if caller == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Access denied"})
			return
		}
		if c.Param(param) != caller {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
			return
		}
		c.Next()
	}
}
