package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"fastpay/internal/db"
	"fastpay/internal/db/dbtest"
	"fastpay/internal/domain"
	"fastpay/internal/events"
	"fastpay/internal/utils"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.TransferCompleted
	err    error
}

func (p *recordingPublisher) PublishTransferCompleted(_ context.Context, e events.TransferCompleted) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) published() []events.TransferCompleted {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.TransferCompleted(nil), p.events...)
}

type recordingInvalidator struct {
	mu    sync.Mutex
	calls [][]string
	err   error
}

func (r *recordingInvalidator) Invalidate(_ context.Context, paymentIDs ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, paymentIDs)
	return r.err
}

type fixture struct {
	store     *db.Store
	gdb       *gorm.DB
	tokens    *utils.TokenManager
	accounts  *AccountService
	transfers *TransferService
	publisher *recordingPublisher
	cache     *recordingInvalidator
	hook      *logtest.Hook
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store, gdb := dbtest.New(t)
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	tokens := utils.NewTokenManager("test-secret", time.Hour)
	publisher := &recordingPublisher{}
	cache := &recordingInvalidator{}
	return &fixture{
		store:     store,
		gdb:       gdb,
		tokens:    tokens,
		accounts:  NewAccountService(store.Accounts, tokens, logger),
		transfers: NewTransferService(store.Accounts, store.Ledger, store, cache, publisher, logger),
		publisher: publisher,
		cache:     cache,
		hook:      hook,
	}
}

func (f *fixture) register(t *testing.T, name, email string) string {
	t.Helper()
	paymentID, err := f.accounts.Register(context.Background(), name, email, "password-"+name)
	require.NoError(t, err)
	return paymentID
}

func (f *fixture) balance(t *testing.T, paymentID string) int64 {
	t.Helper()
	account, err := f.store.Accounts.FindByPaymentID(context.Background(), paymentID)
	require.NoError(t, err)
	return account.Balance
}

func (f *fixture) ledgerSize(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.gdb.Model(&domain.Transaction{}).Count(&n).Error)
	return n
}
