// Package service holds the account and transfer logic. It reaches storage
// only through the domain repository interfaces.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fastpay/internal/domain"
	"fastpay/internal/utils"

	"github.com/sirupsen/logrus"
)

// maxPaymentIDAttempts bounds regeneration after a payment id collision
const maxPaymentIDAttempts = 5

// LoginResult is returned by a successful Authenticate
type LoginResult struct {
	Token     string
	PaymentID string
	Balance   int64
}

// AccountService registers, authenticates and looks up accounts
type AccountService struct {
	accounts     domain.AccountRepository
	tokens       *utils.TokenManager
	log          logrus.FieldLogger
	newPaymentID func() (string, error)
}

// NewAccountService builds an AccountService; a nil log uses the standard logger
func NewAccountService(accounts domain.AccountRepository, tokens *utils.TokenManager, log logrus.FieldLogger) *AccountService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &AccountService{
		accounts:     accounts,
		tokens:       tokens,
		log:          log,
		newPaymentID: utils.GeneratePaymentID,
	}
}

// Register creates an account with the default balance and returns its payment id
func (s *AccountService) Register(ctx context.Context, name, email, password string) (string, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return "", fmt.Errorf("%w: name, email and password are required", domain.ErrInvalidInput)
	}

	if err := s.ensureEmailFree(ctx, email); err != nil {
		return "", err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return "", err
	}

	// The unique index is the authoritative collision check
	for attempt := 1; attempt <= maxPaymentIDAttempts; attempt++ {
		paymentID, err := s.newPaymentID()
		if err != nil {
			return "", err
		}
		account := &domain.Account{
			Name:         name,
			Email:        email,
			PasswordHash: hash,
			PaymentID:    paymentID,
			Balance:      domain.DefaultBalance,
		}
		err = s.accounts.Insert(ctx, account)
		if err == nil {
			s.log.WithFields(logrus.Fields{
				"account_id": account.ID,
				"upi_id":     paymentID,
			}).Info("Account registered")
			return paymentID, nil
		}
		if !errors.Is(err, domain.ErrDuplicateKey) {
			return "", err
		}
		// Either the email was taken concurrently or the payment id collided
		if err := s.ensureEmailFree(ctx, email); err != nil {
			return "", err
		}
		s.log.WithFields(logrus.Fields{
			"upi_id":  paymentID,
			"attempt": attempt,
		}).Warn("Payment id collision, regenerating")
	}
	return "", domain.ErrPaymentIDExhausted
}

func (s *AccountService) ensureEmailFree(ctx context.Context, email string) error {
	_, err := s.accounts.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return domain.ErrAccountExists
	case errors.Is(err, domain.ErrAccountNotFound):
		return nil
	default:
		return err
	}
}

// Authenticate checks credentials and issues a session token. Unknown email
// and wrong password fail with the same error.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*LoginResult, error) {
	account, err := s.accounts.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, domain.ErrAccountNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !utils.CheckPassword(account.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(account.ID, account.PaymentID)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, PaymentID: account.PaymentID, Balance: account.Balance}, nil
}

// GetPublicProfile returns the account without its password hash
func (s *AccountService) GetPublicProfile(ctx context.Context, paymentID string) (*domain.Account, error) {
	account, err := s.accounts.FindByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	account.PasswordHash = ""
	return account, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
