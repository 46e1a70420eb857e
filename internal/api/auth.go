package api

import (
	"net/http" // HTTP status codes

	"fastpay/internal/service" // Account service

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// SignupRequest is the body of POST /api/signup
type SignupRequest struct {
	Name     string `json:"name" binding:"required"`        // Display name
	Email    string `json:"email" binding:"required,email"` // Login email, unique
	Password string `json:"password" binding:"required"`    // Plain password, hashed before storage
}

// LoginRequest is the body of POST /api/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`    // Login email
	Password string `json:"password" binding:"required"` // Plain password
}

// SignupHandler registers an account and returns its payment id
func SignupHandler(accounts *service.AccountService, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c)
			return
		}
		paymentID, err := accounts.Register(c.Request.Context(), req.Name, req.Email, req.Password)
		if err != nil {
			respondError(c, log, err) // Duplicate email, invalid input or store failure
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully!", "upi_id": paymentID})
	}
}

// LoginHandler authenticates an account and returns a session token
func LoginHandler(accounts *service.AccountService, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c)
			return
		}
		res, err := accounts.Authenticate(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful!",
			"token":   res.Token,     // Bearer token for protected routes
			"upi_id":  res.PaymentID, // Caller's payment id
			"balance": res.Balance,   // Balance at login time
		})
	}
}
