package actions_test

import (
	"context"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/pouch-server/internal/errs"
	"github.com/carson-networks/pouch-server/internal/operator/actions"
	"github.com/carson-networks/pouch-server/internal/storage/transaction"
)

func TestDeleteTransaction_ReversesEffects(t *testing.T) {
	store := newTestStorage(t)
	accountID := createTestAccount(t, store, "1000.00")
	pouchID := createTestPouch(t, store, "Groceries")
	txID := createExpense(t, store, accountID, uuid.NullUUID{UUID: pouchID, Valid: true}, "100.00")

	assertDecimal(t, "-100.00", pouchBalance(t, store, pouchID))

	require.NoError(t, perform(t, store, &actions.DeleteTransaction{ID: txID}))

	assertDecimal(t, "0.00", pouchBalance(t, store, pouchID))
	assertDecimal(t, "1000.00", accountBalance(t, store, accountID))

	// The record survives as a soft-deleted row.
	row, err := store.Transactions.FindByID(context.Background(), txID)
	require.NoError(t, err)
	assert.True(t, row.Deleted)

	// Deleted rows drop out of listings.
	rows, err := store.Transactions.List(context.Background(), &transaction.Filter{OwnerID: &testOwnerID})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestDeleteTransaction_ReversesSplits(t *testing.T) {
	store := newTestStorage(t)
	accountID := createTestAccount(t, store, "1000.00")
	splitA := createTestPouch(t, store, "SplitA")
	splitB := createTestPouch(t, store, "SplitB")

	create := &actions.CreateTransaction{
		OwnerID:   testOwnerID,
		AccountID: accountID,
		Amount:    decimal.RequireFromString("90.00"),
		Currency:  "USD",
		Type:      transaction.TypeExpense,
		Splits: []actions.SplitInput{
			{PouchID: splitA, Amount: decimal.RequireFromString("60.00")},
			{PouchID: splitB, Amount: decimal.RequireFromString("30.00")},
		},
	}
	require.NoError(t, perform(t, store, create))

	require.NoError(t, perform(t, store, &actions.DeleteTransaction{ID: create.Created.ID}))

	assertDecimal(t, "0.00", pouchBalance(t, store, splitA))
	assertDecimal(t, "0.00", pouchBalance(t, store, splitB))
	assertDecimal(t, "1000.00", accountBalance(t, store, accountID))
}

func TestDeleteTransaction_AlreadyDeleted(t *testing.T) {
	store := newTestStorage(t)
	accountID := createTestAccount(t, store, "1000.00")
	txID := createExpense(t, store, accountID, uuid.NullUUID{}, "100.00")

	require.NoError(t, perform(t, store, &actions.DeleteTransaction{ID: txID}))

	// Deleting twice must not reverse the effect a second time.
	err := perform(t, store, &actions.DeleteTransaction{ID: txID})
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assertDecimal(t, "1000.00", accountBalance(t, store, accountID))
}
