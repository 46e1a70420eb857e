package api

import (
	"net/http" // HTTP status codes

	"fastpay/internal/domain"  // Domain models
	"fastpay/internal/service" // Account service
	"fastpay/internal/utils"   // Cache helpers

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// GetUserHandler returns the public profile of any account by payment id
func GetUserHandler(accounts *service.AccountService, cache *utils.Cache, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		paymentID := c.Param("upi_id")
		if !utils.IsPaymentID(paymentID) {
			respondError(c, log, domain.ErrAccountNotFound) // Cannot exist
			return
		}
		ctx := c.Request.Context()

		// The generation is taken before the store read so a transfer that
		// commits in between retires whatever this request writes back
		gen, err := cache.Generation(ctx, paymentID)
		cacheable := err == nil
		if err != nil {
			log.WithField("error", err.Error()).Warn("Profile cache generation read failed")
		}
		key := utils.AccountKey(paymentID, gen)

		if cacheable {
			var account domain.Account
			if ok, err := cache.Get(ctx, key, &account); err != nil {
				log.WithField("error", err.Error()).Warn("Profile cache read failed")
			} else if ok {
				c.JSON(http.StatusOK, account) // Cache hit
				return
			}
		}

		found, err := accounts.GetPublicProfile(ctx, paymentID)
		if err != nil {
			respondError(c, log, err)
			return
		}
		if cacheable {
			if err := cache.Set(ctx, key, found); err != nil {
				log.WithField("error", err.Error()).Warn("Profile cache write failed")
			}
		}
		c.JSON(http.StatusOK, found)
	}
}
