package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"fastpay/internal/db"
	"fastpay/internal/domain"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransferScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "Alice", "alice@example.com")
	bob := f.register(t, "Bob", "bob@example.com")

	entry, err := f.transfers.Transfer(ctx, alice, bob, 300)
	require.NoError(t, err)
	assert.NotZero(t, entry.ID)
	assert.Equal(t, int64(700), f.balance(t, alice))
	assert.Equal(t, int64(1300), f.balance(t, bob))

	history, err := f.transfers.History(ctx, alice)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, int64(300), history[0].Amount)
	assert.Equal(t, alice, history[0].SenderPaymentID)
	assert.Equal(t, bob, history[0].ReceiverPaymentID)

	published := f.publisher.published()
	require.Len(t, published, 1)
	assert.Equal(t, entry.ID, published[0].TransactionID)
	assert.Equal(t, [][]string{{alice, bob}}, f.cache.calls)

	// Alice now has 700
	_, err = f.transfers.Transfer(ctx, alice, bob, 5000)
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
	assert.Equal(t, int64(700), f.balance(t, alice))
	assert.Equal(t, int64(1300), f.balance(t, bob))
	assert.Equal(t, int64(1), f.ledgerSize(t))
	assert.Len(t, f.publisher.published(), 1)
	assert.Len(t, f.cache.calls, 1)
}

func TestTransferConservesBalance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "Alice", "alice@example.com")
	bob := f.register(t, "Bob", "bob@example.com")

	for _, amount := range []int64{1, 99, 400, 500} {
		beforeA, beforeB := f.balance(t, alice), f.balance(t, bob)
		_, err := f.transfers.Transfer(ctx, alice, bob, amount)
		require.NoError(t, err)
		assert.Equal(t, beforeA, f.balance(t, alice)+amount)
		assert.Equal(t, beforeB+amount, f.balance(t, bob))
	}
	assert.Equal(t, int64(0), f.balance(t, alice))
	assert.Equal(t, int64(2000), f.balance(t, bob))
}

func TestTransferRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "Alice", "alice@example.com")
	bob := f.register(t, "Bob", "bob@example.com")

	tests := []struct {
		name     string
		sender   string
		receiver string
		amount   int64
		want     error
	}{
		{"zero amount", alice, bob, 0, domain.ErrInvalidAmount},
		{"negative amount", alice, bob, -50, domain.ErrInvalidAmount},
		{"self transfer", alice, alice, 10, domain.ErrInvalidRecipient},
		{"unknown sender", "ffffffff@fastpay", bob, 10, domain.ErrAccountNotFound},
		{"unknown receiver", alice, "ffffffff@fastpay", 10, domain.ErrAccountNotFound},
		{"insufficient", alice, bob, 1001, domain.ErrInsufficientBalance},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.transfers.Transfer(ctx, tt.sender, tt.receiver, tt.amount)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, int64(1000), f.balance(t, alice))
			assert.Equal(t, int64(1000), f.balance(t, bob))
			assert.Equal(t, int64(0), f.ledgerSize(t))
		})
	}
	assert.Empty(t, f.publisher.published())
	assert.Empty(t, f.cache.calls)
}

func TestTransferConcurrentDebitsNeverOverdraw(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "Alice", "alice@example.com")
	bob := f.register(t, "Bob", "bob@example.com")

	var (
		wg           sync.WaitGroup
		mu           sync.Mutex
		succeeded    int
		insufficient int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.transfers.Transfer(ctx, alice, bob, 200)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, domain.ErrInsufficientBalance):
				insufficient++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, succeeded)
	assert.Equal(t, 5, insufficient)
	assert.Equal(t, int64(0), f.balance(t, alice))
	assert.Equal(t, int64(2000), f.balance(t, bob))
	assert.Equal(t, int64(5), f.ledgerSize(t))
}

type failingLedger struct{ domain.LedgerRepository }

func (failingLedger) Insert(context.Context, *domain.Transaction) error {
	return fmt.Errorf("insert transaction: %w", domain.ErrStoreUnavailable)
}

type failingLedgerUnit struct{ store *db.Store }

func (u failingLedgerUnit) WithinTransaction(ctx context.Context, fn func(domain.AccountRepository, domain.LedgerRepository) error) error {
	return u.store.WithinTransaction(ctx, func(accounts domain.AccountRepository, ledger domain.LedgerRepository) error {
		return fn(accounts, failingLedger{ledger})
	})
}

func TestTransferRollsBackWhenLedgerInsertFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "Alice", "alice@example.com")
	bob := f.register(t, "Bob", "bob@example.com")
	f.transfers.uow = failingLedgerUnit{store: f.store}

	_, err := f.transfers.Transfer(ctx, alice, bob, 300)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.Equal(t, int64(1000), f.balance(t, alice))
	assert.Equal(t, int64(1000), f.balance(t, bob))
	assert.Equal(t, int64(0), f.ledgerSize(t))

	last := f.hook.LastEntry()
	require.NotNil(t, last)
	assert.Equal(t, logrus.ErrorLevel, last.Level)
	assert.Equal(t, "store", last.Data["kind"])
}

// drainingUnit spends the sender's balance in its own transaction just before
// the transfer's unit of work runs, as a concurrent request would.
type drainingUnit struct {
	store  *db.Store
	sender string
}

func (u drainingUnit) WithinTransaction(ctx context.Context, fn func(domain.AccountRepository, domain.LedgerRepository) error) error {
	account, err := u.store.Accounts.FindByPaymentID(ctx, u.sender)
	if err != nil {
		return err
	}
	if err := u.store.Accounts.Debit(ctx, u.sender, account.Balance); err != nil {
		return err
	}
	return u.store.WithinTransaction(ctx, fn)
}

func TestTransferLosingBalanceRaceIsWarned(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "Alice", "alice@example.com")
	bob := f.register(t, "Bob", "bob@example.com")
	f.transfers.uow = drainingUnit{store: f.store, sender: alice}

	_, err := f.transfers.Transfer(ctx, alice, bob, 300)
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
	assert.Equal(t, int64(0), f.balance(t, alice))
	assert.Equal(t, int64(1000), f.balance(t, bob))
	assert.Equal(t, int64(0), f.ledgerSize(t))

	last := f.hook.LastEntry()
	require.NotNil(t, last)
	assert.Equal(t, logrus.WarnLevel, last.Level)
	assert.Equal(t, "Transfer rejected", last.Message)
	assert.Equal(t, "validation", last.Data["kind"])
	for _, e := range f.hook.AllEntries() {
		assert.NotEqual(t, logrus.ErrorLevel, e.Level, e.Message)
	}
}

func TestTransferSurvivesCacheFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "Alice", "alice@example.com")
	bob := f.register(t, "Bob", "bob@example.com")
	f.cache.err = errors.New("redis down")

	_, err := f.transfers.Transfer(ctx, alice, bob, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(900), f.balance(t, alice))
	assert.Len(t, f.publisher.published(), 1)

	var warned bool
	for _, e := range f.hook.AllEntries() {
		if e.Message == "Cache invalidation failed" {
			warned = e.Level == logrus.WarnLevel
		}
	}
	assert.True(t, warned)
}

func TestTransferSurvivesPublishFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "Alice", "alice@example.com")
	bob := f.register(t, "Bob", "bob@example.com")
	f.publisher.err = errors.New("broker down")

	_, err := f.transfers.Transfer(ctx, alice, bob, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(900), f.balance(t, alice))

	last := f.hook.LastEntry()
	require.NotNil(t, last)
	assert.Equal(t, logrus.WarnLevel, last.Level)
	assert.Equal(t, "Failed to publish transfer event", last.Message)
}

func TestHistory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "Alice", "alice@example.com")
	bob := f.register(t, "Bob", "bob@example.com")
	carol := f.register(t, "Carol", "carol@example.com")

	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f.transfers.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	steps := []struct {
		from, to string
		amount   int64
	}{
		{alice, bob, 10},
		{bob, carol, 20},
		{carol, alice, 30},
		{bob, alice, 40},
		{carol, bob, 50},
	}
	for _, s := range steps {
		_, err := f.transfers.Transfer(ctx, s.from, s.to, s.amount)
		require.NoError(t, err)
	}

	for _, id := range []string{alice, bob, carol} {
		history, err := f.transfers.History(ctx, id)
		require.NoError(t, err)

		want := 0
		for _, s := range steps {
			if s.from == id || s.to == id {
				want++
			}
		}
		assert.Len(t, history, want)
		for i, tx := range history {
			assert.True(t, tx.Involves(id))
			if i > 0 {
				assert.False(t, tx.Timestamp.After(history[i-1].Timestamp))
			}
		}
	}

	history, err := f.transfers.History(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(40), history[0].Amount)
	assert.Equal(t, int64(10), history[len(history)-1].Amount)

	empty, err := f.transfers.History(ctx, "ffffffff@fastpay")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
