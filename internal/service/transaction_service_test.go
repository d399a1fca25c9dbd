package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/pouch-server/internal/errs"
	"github.com/carson-networks/pouch-server/internal/logging"
	"github.com/carson-networks/pouch-server/internal/migrate"
	"github.com/carson-networks/pouch-server/internal/operator"
	"github.com/carson-networks/pouch-server/internal/service"
	"github.com/carson-networks/pouch-server/internal/shard"
	"github.com/carson-networks/pouch-server/internal/storage"
	"github.com/carson-networks/pouch-server/internal/storage/account"
	"github.com/carson-networks/pouch-server/internal/storage/transaction"
)

var testOwnerID = uuid.Must(uuid.FromString("3f3b7a52-4c1d-4e99-92a4-8f6f0ad21d37"))

// newTestService wires storage, a single-worker operator and the service
// layer against a fresh migrated shard set.
func newTestService(t *testing.T) (*service.Service, *storage.Storage) {
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

	store := storage.NewStorage(set)

	delegator := operator.NewOperatorDelegator(store, 1)
	delegator.Start()
	t.Cleanup(delegator.Stop)

	return service.NewService(store, delegator), store
}

func newServiceAccount(t *testing.T, svc *service.Service, startingBalance string) uuid.UUID {
	t.Helper()

	created, err := svc.Account.CreateAccount(context.Background(), service.CreateAccountInput{
		OwnerID:         testOwnerID,
		Name:            "Checking",
		Type:            account.TypeCash,
		Currency:        "USD",
		StartingBalance: decimal.RequireFromString(startingBalance),
	})
	require.NoError(t, err)
	return created.ID
}

func TestTransactionService_CreateAndGet(t *testing.T) {
	svc, store := newTestService(t)
	accountID := newServiceAccount(t, svc, "5000.00")
	ctx := context.Background()

	created, err := svc.Transaction.CreateTransaction(ctx, service.CreateTransactionInput{
		OwnerID:     testOwnerID,
		AccountID:   accountID,
		Amount:      decimal.RequireFromString("45.67"),
		Currency:    "USD",
		Type:        transaction.TypeExpense,
		Description: "Groceries",
		Category:    "food",
	})
	require.NoError(t, err)

	fetched, err := svc.Transaction.GetTransaction(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Groceries", fetched.Description)
	assert.True(t, fetched.Amount.Equal(decimal.RequireFromString("45.67")))

	row, err := store.Accounts.FindByID(ctx, accountID)
	require.NoError(t, err)
	assert.True(t, row.Balance.Equal(decimal.RequireFromString("4954.33")), "got %s", row.Balance)
}

func TestTransactionService_UpdateAppliesDelta(t *testing.T) {
	svc, store := newTestService(t)
	accountID := newServiceAccount(t, svc, "1000.00")
	ctx := context.Background()

	created, err := svc.Transaction.CreateTransaction(ctx, service.CreateTransactionInput{
		OwnerID:   testOwnerID,
		AccountID: accountID,
		Amount:    decimal.RequireFromString("100.00"),
		Currency:  "USD",
		Type:      transaction.TypeExpense,
	})
	require.NoError(t, err)

	newAmount := decimal.RequireFromString("150.00")
	updated, err := svc.Transaction.UpdateTransaction(ctx, created.ID, service.UpdateTransactionPatch{
		Amount: &newAmount,
	})
	require.NoError(t, err)
	assert.True(t, updated.Amount.Equal(newAmount))

	row, err := store.Accounts.FindByID(ctx, accountID)
	require.NoError(t, err)
	assert.True(t, row.Balance.Equal(decimal.RequireFromString("850.00")), "got %s", row.Balance)
}

func TestTransactionService_DeleteHidesAndRestores(t *testing.T) {
	svc, store := newTestService(t)
	accountID := newServiceAccount(t, svc, "1000.00")
	ctx := context.Background()

	created, err := svc.Transaction.CreateTransaction(ctx, service.CreateTransactionInput{
		OwnerID:   testOwnerID,
		AccountID: accountID,
		Amount:    decimal.RequireFromString("100.00"),
		Currency:  "USD",
		Type:      transaction.TypeExpense,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Transaction.DeleteTransaction(ctx, created.ID))

	_, err = svc.Transaction.GetTransaction(ctx, created.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	row, err := store.Accounts.FindByID(ctx, accountID)
	require.NoError(t, err)
	assert.True(t, row.Balance.Equal(decimal.RequireFromString("1000.00")), "got %s", row.Balance)
}

func TestTransactionService_ListPaginates(t *testing.T) {
	svc, _ := newTestService(t)
	accountID := newServiceAccount(t, svc, "10000.00")
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := svc.Transaction.CreateTransaction(ctx, service.CreateTransactionInput{
			OwnerID:     testOwnerID,
			AccountID:   accountID,
			Amount:      decimal.RequireFromString("10.00"),
			Currency:    "USD",
			Type:        transaction.TypeExpense,
			Description: fmt.Sprintf("tx-%d", i),
		})
		require.NoError(t, err)
	}

	page1, cursor, err := svc.Transaction.ListTransactions(ctx, testOwnerID, nil)
	require.NoError(t, err)
	assert.Len(t, page1, 5)
	assert.Nil(t, cursor, "everything fits in the default page")

	// Walk with a page size of 2: 2 + 2 + 1.
	first, cursor, err := svc.Transaction.ListTransactions(ctx, testOwnerID, &service.TransactionCursor{
		Limit:           2,
		MaxCreationTime: time.Now().UTC().Add(time.Hour),
	})
	require.NoError(t, err)
	assert.Len(t, first, 2)
	require.NotNil(t, cursor)
	assert.Equal(t, 2, cursor.Position)

	second, cursor, err := svc.Transaction.ListTransactions(ctx, testOwnerID, cursor)
	require.NoError(t, err)
	assert.Len(t, second, 2)
	require.NotNil(t, cursor)
	assert.Equal(t, 4, cursor.Position)

	third, cursor, err := svc.Transaction.ListTransactions(ctx, testOwnerID, cursor)
	require.NoError(t, err)
	assert.Len(t, third, 1)
	assert.Nil(t, cursor, "last page carries no cursor")

	// No duplicates across pages.
	seen := map[uuid.UUID]bool{}
	for _, tx := range append(append(first, second...), third...) {
		assert.False(t, seen[tx.ID], "transaction %s returned twice", tx.ID)
		seen[tx.ID] = true
	}
}

func TestTransactionService_ListEmpty(t *testing.T) {
	svc, _ := newTestService(t)

	rows, cursor, err := svc.Transaction.ListTransactions(context.Background(), testOwnerID, nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Nil(t, cursor)
}
