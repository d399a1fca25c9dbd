package operator_test

import (
	"context"
	"sync"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/pouch-server/internal/logging"
	"github.com/carson-networks/pouch-server/internal/migrate"
	"github.com/carson-networks/pouch-server/internal/operator"
	"github.com/carson-networks/pouch-server/internal/operator/actions"
	"github.com/carson-networks/pouch-server/internal/shard"
	"github.com/carson-networks/pouch-server/internal/storage"
	"github.com/carson-networks/pouch-server/internal/storage/account"
	"github.com/carson-networks/pouch-server/internal/storage/transaction"
)

var testOwnerID = uuid.Must(uuid.FromString("9c2a6f1e-5b84-4d07-8e63-2f1a0b9c7d45"))

func newDelegatorStorage(t *testing.T) *storage.Storage {
	t.Helper()

	dir := t.TempDir()
	dsns := make(map[shard.Shard]string)
	for _, sh := range shard.AllShards() {
		dsns[sh] = shard.FileDSN(dir, sh)
	}

	set, err := shard.Open(shard.NewMap(), dsns)
	require.NoError(t, err)
	t.Cleanup(func() { _ = set.Close() })

	engine, err := migrate.NewEngine(set, migrate.All(), logging.SetupLogging())
	require.NoError(t, err)
	require.NoError(t, engine.Apply(context.Background(), nil))

	return storage.NewStorage(set)
}

// Balance maintenance is read-modify-write: two interleaved mutations on the
// same account can lose an update. The delegator serializes them through a
// single worker even when a larger worker count is requested.
func TestProcess_ConcurrentMutationsOnOneAccount(t *testing.T) {
	store := newDelegatorStorage(t)
	delegator := operator.NewOperatorDelegator(store, 8)
	delegator.Start()
	t.Cleanup(delegator.Stop)
	ctx := context.Background()

	create := &actions.CreateAccount{
		OwnerID:         testOwnerID,
		Name:            "Checking",
		Type:            account.TypeCash,
		Currency:        "USD",
		StartingBalance: decimal.RequireFromString("1000.00"),
	}
	require.NoError(t, delegator.Process(ctx, create))

	const mutations = 25
	errCh := make(chan error, mutations)
	var wg sync.WaitGroup
	for i := 0; i < mutations; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errCh <- delegator.Process(ctx, &actions.CreateTransaction{
				OwnerID:   testOwnerID,
				AccountID: create.CreatedID,
				Amount:    decimal.RequireFromString("10.00"),
				Currency:  "USD",
				Type:      transaction.TypeExpense,
			})
		}()
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		require.NoError(t, err)
	}

	row, err := store.Accounts.FindByID(ctx, create.CreatedID)
	require.NoError(t, err)
	assert.True(t, row.Balance.Equal(decimal.RequireFromString("750.00")), "got %s", row.Balance)
}

func TestProcess_StopDrainsQueue(t *testing.T) {
	store := newDelegatorStorage(t)
	delegator := operator.NewOperatorDelegator(store, 1)
	delegator.Start()
	ctx := context.Background()

	create := &actions.CreateAccount{
		OwnerID:         testOwnerID,
		Name:            "Savings",
		Type:            account.TypeSavings,
		Currency:        "USD",
		StartingBalance: decimal.RequireFromString("500.00"),
	}
	require.NoError(t, delegator.Process(ctx, create))

	delegator.Stop()
	delegator.Stop()

	row, err := store.Accounts.FindByID(ctx, create.CreatedID)
	require.NoError(t, err)
	assert.True(t, row.Balance.Equal(decimal.RequireFromString("500.00")))
}
