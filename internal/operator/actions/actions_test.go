package actions_test

import (
	"context"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/pouch-server/internal/logging"
	"github.com/carson-networks/pouch-server/internal/migrate"
	"github.com/carson-networks/pouch-server/internal/operator/actions"
	"github.com/carson-networks/pouch-server/internal/shard"
	"github.com/carson-networks/pouch-server/internal/storage"
	"github.com/carson-networks/pouch-server/internal/storage/account"
	"github.com/carson-networks/pouch-server/internal/storage/pouch"
)

var testOwnerID = uuid.Must(uuid.FromString("b7f5cbd4-9932-47bb-a2a9-cbf31b30ef5b"))

// newTestStorage opens a fresh shard set under a temp directory and brings
// every shard to the latest schema version.
func newTestStorage(t *testing.T) *storage.Storage {
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

// perform runs one action inside a fresh multi-shard write, committing on
// success and rolling back on failure, the same way the operator does.
func perform(t *testing.T, store *storage.Storage, action actions.IAction) error {
	t.Helper()

	ctx := context.Background()
	writer, err := store.Write(ctx)
	require.NoError(t, err)

	if err := action.Perform(ctx, writer); err != nil {
		require.NoError(t, writer.Rollback(ctx))
		return err
	}
	return writer.Commit(ctx)
}

func createTestAccount(t *testing.T, store *storage.Storage, startingBalance string) uuid.UUID {
	t.Helper()

	action := &actions.CreateAccount{
		OwnerID:         testOwnerID,
		Name:            "Checking",
		Type:            account.TypeCash,
		Currency:        "USD",
		StartingBalance: decimal.RequireFromString(startingBalance),
	}
	require.NoError(t, perform(t, store, action))
	return action.CreatedID
}

func createTestPouch(t *testing.T, store *storage.Storage, name string) uuid.UUID {
	t.Helper()

	action := &actions.CreatePouch{
		OwnerID:    testOwnerID,
		Name:       name,
		Visibility: pouch.VisibilityPrivate,
	}
	require.NoError(t, perform(t, store, action))
	return action.CreatedID
}

func accountBalance(t *testing.T, store *storage.Storage, id uuid.UUID) decimal.Decimal {
	t.Helper()

	row, err := store.Accounts.FindByID(context.Background(), id)
	require.NoError(t, err)
	return row.Balance
}

func pouchBalance(t *testing.T, store *storage.Storage, id uuid.UUID) decimal.Decimal {
	t.Helper()

	row, err := store.Pouches.FindByID(context.Background(), id)
	require.NoError(t, err)
	return row.Balance
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()

	if !got.Equal(decimal.RequireFromString(want)) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}
