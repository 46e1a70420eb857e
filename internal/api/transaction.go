package api

import (
	"net/http" // HTTP status codes

	"fastpay/internal/domain"     // Domain models
	"fastpay/internal/middleware" // Caller identity
	"fastpay/internal/service"    // Transfer service
	"fastpay/internal/utils"      // Cache helpers

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Wire amounts
	"github.com/sirupsen/logrus"    // Logging library
)

// TransferRequest is the body of POST /api/transaction. Amount accepts a JSON
// number or a numeric string.
type TransferRequest struct {
	SenderPaymentID   string          `json:"sender_upi_id" binding:"required"`   // Must be the caller
	ReceiverPaymentID string          `json:"receiver_upi_id" binding:"required"` // Recipient payment id
	Amount            decimal.Decimal `json:"amount"`                             // Whole minor units
}

// TransferHandler moves balance from the caller to another account. The
// service retires cached reads of both parties once the transfer commits.
func TransferHandler(transfers *service.TransferService, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TransferRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c)
			return
		}
		// Only the owner of the sending account may spend from it
		if req.SenderPaymentID != middleware.CallerPaymentID(c) {
			respondError(c, log, domain.ErrForbidden)
			return
		}
		amount, err := domain.AmountFromDecimal(req.Amount)
		if err != nil {
			respondError(c, log, err)
			return
		}
		if _, err := transfers.Transfer(c.Request.Context(), req.SenderPaymentID, req.ReceiverPaymentID, amount); err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Transaction successful!"})
	}
}

// HistoryHandler lists the caller's ledger entries, newest first
func HistoryHandler(transfers *service.TransferService, cache *utils.Cache, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		paymentID := c.Param("upi_id") // Ownership checked by middleware
		ctx := c.Request.Context()

		gen, err := cache.Generation(ctx, paymentID) // Before the store read
		cacheable := err == nil
		if err != nil {
			log.WithField("error", err.Error()).Warn("History cache generation read failed")
		}
		key := utils.HistoryKey(paymentID, gen)

		if cacheable {
			var history []domain.Transaction
			if ok, err := cache.Get(ctx, key, &history); err != nil {
				log.WithField("error", err.Error()).Warn("History cache read failed")
			} else if ok {
				c.JSON(http.StatusOK, history) // Cache hit
				return
			}
		}

		history, err := transfers.History(ctx, paymentID)
		if err != nil {
			respondError(c, log, err)
			return
		}
		if cacheable {
			if err := cache.Set(ctx, key, history); err != nil {
				log.WithField("error", err.Error()).Warn("History cache write failed")
			}
		}
		c.JSON(http.StatusOK, history)
	}
}
