package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"fastpay/internal/utils" // Token manager

	"github.com/gin-gonic/gin" // Gin web framework
)

// Context keys set by JWTAuthMiddleware
const (
	AccountIDKey = "accountID"
	PaymentIDKey = "paymentID"
)

// JWTAuthMiddleware validates JWT tokens and extracts account information
func JWTAuthMiddleware(tokens *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Access denied"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string
		claims, err := tokens.Parse(tokenStr)
		if err != nil {
			// Malformed, forged and expired tokens are all rejected the same way
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Invalid token"})
			return
		}
		c.Set(AccountIDKey, claims.AccountID) // Store account id in context
		c.Set(PaymentIDKey, claims.PaymentID) // Store payment id in context
		c.Next()                              // Proceed to the next handler
	}
}

// CallerPaymentID returns the payment id of the authenticated caller
func CallerPaymentID(c *gin.Context) string {
	return c.GetString(PaymentIDKey)
}
