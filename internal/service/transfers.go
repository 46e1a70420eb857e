package service

import (
	"context"
	"fmt"
	"time"

	"fastpay/internal/domain"
	"fastpay/internal/events"

	"github.com/sirupsen/logrus"
)

const publishTimeout = 5 * time.Second

// CacheInvalidator retires cached reads of the given payment ids
type CacheInvalidator interface {
	Invalidate(ctx context.Context, paymentIDs ...string) error
}

type nopInvalidator struct{}

func (nopInvalidator) Invalidate(context.Context, ...string) error { return nil }

// TransferService moves balance between accounts and records each move in the ledger
type TransferService struct {
	accounts  domain.AccountRepository
	ledger    domain.LedgerRepository
	uow       domain.UnitOfWork
	cache     CacheInvalidator
	publisher events.Publisher
	log       logrus.FieldLogger
	now       func() time.Time
}

// NewTransferService builds a TransferService; nil cache, publisher and log fall back to no-ops and the standard logger
func NewTransferService(accounts domain.AccountRepository, ledger domain.LedgerRepository, uow domain.UnitOfWork, cache CacheInvalidator, publisher events.Publisher, log logrus.FieldLogger) *TransferService {
	if cache == nil {
		cache = nopInvalidator{}
	}
	if publisher == nil {
		publisher = events.Nop{}
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &TransferService{
		accounts:  accounts,
		ledger:    ledger,
		uow:       uow,
		cache:     cache,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

// Transfer debits sender and credits receiver by amount, then appends a
// ledger entry. The three writes commit or roll back together, and the debit
// only applies while the sender's balance still covers amount.
func (s *TransferService) Transfer(ctx context.Context, sender, receiver string, amount int64) (*domain.Transaction, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if sender == receiver {
		return nil, domain.ErrInvalidRecipient
	}

	from, err := s.accounts.FindByPaymentID(ctx, sender)
	if err != nil {
		return nil, fmt.Errorf("sender: %w", err)
	}
	if _, err := s.accounts.FindByPaymentID(ctx, receiver); err != nil {
		return nil, fmt.Errorf("receiver: %w", err)
	}
	if from.Balance < amount {
		return nil, domain.ErrInsufficientBalance
	}

	entry := &domain.Transaction{
		SenderPaymentID:   sender,
		ReceiverPaymentID: receiver,
		Amount:            amount,
		Timestamp:         s.now().UTC(),
	}
	err = s.uow.WithinTransaction(ctx, func(accounts domain.AccountRepository, ledger domain.LedgerRepository) error {
		if err := accounts.Debit(ctx, sender, amount); err != nil {
			return err
		}
		if err := accounts.Credit(ctx, receiver, amount); err != nil {
			return err
		}
		return ledger.Insert(ctx, entry)
	})
	if err != nil {
		kind := domain.KindOf(err)
		entry := s.log.WithFields(logrus.Fields{
			"sender":   sender,
			"receiver": receiver,
			"amount":   amount,
			"kind":     kind.String(),
			"error":    err.Error(),
		})
		switch kind {
		case domain.KindStore, domain.KindInternal:
			entry.Error("Transfer failed")
		default:
			entry.Warn("Transfer rejected") // Lost a race for the balance, or the account vanished
		}
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"transaction_id": entry.ID,
		"sender":         sender,
		"receiver":       receiver,
		"amount":         amount,
		"timestamp":      entry.Timestamp.Format(time.RFC3339),
	}).Info("Transfer transaction")

	s.invalidate(ctx, sender, receiver)
	s.publish(ctx, entry)
	return entry, nil
}

// invalidate retires cached profiles and histories of both parties
func (s *TransferService) invalidate(ctx context.Context, paymentIDs ...string) {
	if err := s.cache.Invalidate(context.WithoutCancel(ctx), paymentIDs...); err != nil {
		s.log.WithFields(logrus.Fields{
			"upi_ids": paymentIDs,
			"error":   err.Error(),
		}).Warn("Cache invalidation failed")
	}
}

// publish is best effort: the transfer is already committed
func (s *TransferService) publish(ctx context.Context, entry *domain.Transaction) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	err := s.publisher.PublishTransferCompleted(ctx, events.TransferCompleted{
		TransactionID:     entry.ID,
		SenderPaymentID:   entry.SenderPaymentID,
		ReceiverPaymentID: entry.ReceiverPaymentID,
		Amount:            entry.Amount,
		OccurredAt:        entry.Timestamp,
	})
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"transaction_id": entry.ID,
			"error":          err.Error(),
		}).Warn("Failed to publish transfer event")
	}
}

// History lists every ledger entry the payment id took part in, newest first
func (s *TransferService) History(ctx context.Context, paymentID string) ([]domain.Transaction, error) {
	return s.ledger.FindByPaymentID(ctx, paymentID)
}
