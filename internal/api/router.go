// Package api exposes the HTTP surface of the ledger.
package api

import (
	"slices" // Origin list check
	"time"   // CORS max age

	"fastpay/internal/middleware" // Auth and request middleware
	"fastpay/internal/service"    // Services
	"fastpay/internal/utils"      // Tokens and cache

	"github.com/gin-contrib/cors" // CORS middleware
	"github.com/gin-gonic/gin"    // Gin web framework
	"github.com/sirupsen/logrus"  // Logging library
)

// Deps are the collaborators the HTTP handlers need
type Deps struct {
	Accounts    *service.AccountService
	Transfers   *service.TransferService
	Tokens      *utils.TokenManager
	Cache       *utils.Cache // May be nil; caching is then disabled
	Store       Pinger
	CORSOrigins []string           // "*" or empty allows every origin
	Log         logrus.FieldLogger // Defaults to the standard logger
}

// NewRouter wires middleware and routes
func NewRouter(d Deps) *gin.Engine {
	if d.Log == nil {
		d.Log = logrus.StandardLogger()
	}
	r := gin.New()
	r.Use(middleware.RequestID(d.Log), gin.Recovery(), cors.New(corsConfig(d.CORSOrigins)))

	r.GET("/healthz", HealthHandler(d.Store, d.Log))

	apiGroup := r.Group("/api")
	apiGroup.POST("/signup", SignupHandler(d.Accounts, d.Log)) // Registration endpoint
	apiGroup.POST("/login", LoginHandler(d.Accounts, d.Log))   // Login endpoint

	// Protected routes
	protected := apiGroup.Group("")
	protected.Use(middleware.JWTAuthMiddleware(d.Tokens))
	protected.GET("/user/:upi_id", GetUserHandler(d.Accounts, d.Cache, d.Log)) // Public profile
	protected.POST("/transaction", TransferHandler(d.Transfers, d.Log))        // Transfer endpoint
	protected.GET("/transactions/:upi_id", middleware.OwnerOnlyMiddleware("upi_id"),
		HistoryHandler(d.Transfers, d.Cache, d.Log)) // Caller's own history

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
