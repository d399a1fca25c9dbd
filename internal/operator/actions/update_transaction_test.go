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
	"github.com/carson-networks/pouch-server/internal/storage"
	"github.com/carson-networks/pouch-server/internal/storage/transaction"
)

func createExpense(t *testing.T, store *storage.Storage, accountID uuid.UUID, pouchID uuid.NullUUID, amount string) uuid.UUID {
	t.Helper()

	action := &actions.CreateTransaction{
		OwnerID:   testOwnerID,
		AccountID: accountID,
		Amount:    decimal.RequireFromString(amount),
		Currency:  "USD",
		Type:      transaction.TypeExpense,
		PouchID:   pouchID,
	}
	require.NoError(t, perform(t, store, action))
	return action.Created.ID
}

func TestUpdateTransaction_AmountChangeAppliesDelta(t *testing.T) {
	store := newTestStorage(t)
	accountID := createTestAccount(t, store, "1000.00")
	pouchID := createTestPouch(t, store, "Groceries")
	txID := createExpense(t, store, accountID, uuid.NullUUID{UUID: pouchID, Valid: true}, "100.00")

	assertDecimal(t, "-100.00", pouchBalance(t, store, pouchID))
	assertDecimal(t, "900.00", accountBalance(t, store, accountID))

	newAmount := decimal.RequireFromString("150.00")
	action := &actions.UpdateTransaction{ID: txID, Amount: &newAmount}
	require.NoError(t, perform(t, store, action))

	// The delta is new effect minus old effect (-50), not the full new
	// effect stacked on top of the old one.
	assertDecimal(t, "-150.00", pouchBalance(t, store, pouchID))
	assertDecimal(t, "850.00", accountBalance(t, store, accountID))
	assertDecimal(t, "150.00", action.Updated.Amount)
}

func TestUpdateTransaction_PouchReassignment(t *testing.T) {
	store := newTestStorage(t)
	accountID := createTestAccount(t, store, "1000.00")
	oldPouch := createTestPouch(t, store, "Old")
	newPouch := createTestPouch(t, store, "New")
	txID := createExpense(t, store, accountID, uuid.NullUUID{UUID: oldPouch, Valid: true}, "100.00")

	reassigned := uuid.NullUUID{UUID: newPouch, Valid: true}
	action := &actions.UpdateTransaction{ID: txID, PouchID: &reassigned}
	require.NoError(t, perform(t, store, action))

	assertDecimal(t, "0", pouchBalance(t, store, oldPouch))
	assertDecimal(t, "-100.00", pouchBalance(t, store, newPouch))
	assertDecimal(t, "900.00", accountBalance(t, store, accountID))
}

func TestUpdateTransaction_ClearPouchAssignment(t *testing.T) {
	store := newTestStorage(t)
	accountID := createTestAccount(t, store, "1000.00")
	pouchID := createTestPouch(t, store, "Groceries")
	txID := createExpense(t, store, accountID, uuid.NullUUID{UUID: pouchID, Valid: true}, "100.00")

	cleared := uuid.NullUUID{}
	action := &actions.UpdateTransaction{ID: txID, PouchID: &cleared}
	require.NoError(t, perform(t, store, action))

	assertDecimal(t, "0", pouchBalance(t, store, pouchID))
	assertDecimal(t, "900.00", accountBalance(t, store, accountID))
}

func TestUpdateTransaction_TypeFlipReversesEffect(t *testing.T) {
	store := newTestStorage(t)
	accountID := createTestAccount(t, store, "1000.00")
	txID := createExpense(t, store, accountID, uuid.NullUUID{}, "100.00")

	income := transaction.TypeIncome
	action := &actions.UpdateTransaction{ID: txID, Type: &income}
	require.NoError(t, perform(t, store, action))

	// -100 became +100, a delta of +200.
	assertDecimal(t, "1100.00", accountBalance(t, store, accountID))
}

func TestUpdateTransaction_ReplaceSplits(t *testing.T) {
	store := newTestStorage(t)
	accountID := createTestAccount(t, store, "1000.00")
	splitA := createTestPouch(t, store, "SplitA")
	splitB := createTestPouch(t, store, "SplitB")

	create := &actions.CreateTransaction{
		OwnerID:   testOwnerID,
		AccountID: accountID,
		Amount:    decimal.RequireFromString("100.00"),
		Currency:  "USD",
		Type:      transaction.TypeExpense,
		Splits: []actions.SplitInput{
			{PouchID: splitA, Amount: decimal.RequireFromString("100.00")},
		},
	}
	require.NoError(t, perform(t, store, create))

	newSplits := []actions.SplitInput{
		{PouchID: splitB, Amount: decimal.RequireFromString("40.00")},
	}
	action := &actions.UpdateTransaction{ID: create.Created.ID, Splits: &newSplits}
	require.NoError(t, perform(t, store, action))

	assertDecimal(t, "0", pouchBalance(t, store, splitA))
	assertDecimal(t, "-40.00", pouchBalance(t, store, splitB))
	// The account effect is driven by the transaction amount, not the splits.
	assertDecimal(t, "900.00", accountBalance(t, store, accountID))
}

func TestUpdateTransaction_UnchangedSplitsKeepTheirRows(t *testing.T) {
	store := newTestStorage(t)
	accountID := createTestAccount(t, store, "1000.00")
	keep := createTestPouch(t, store, "Keep")
	resize := createTestPouch(t, store, "Resize")
	added := createTestPouch(t, store, "Added")

	create := &actions.CreateTransaction{
		OwnerID:   testOwnerID,
		AccountID: accountID,
		Amount:    decimal.RequireFromString("100.00"),
		Currency:  "USD",
		Type:      transaction.TypeExpense,
		Splits: []actions.SplitInput{
			{PouchID: keep, Amount: decimal.RequireFromString("40.00")},
			{PouchID: resize, Amount: decimal.RequireFromString("60.00")},
		},
	}
	require.NoError(t, perform(t, store, create))

	before, err := store.Transactions.SplitsByTransaction(context.Background(), create.Created.ID)
	require.NoError(t, err)
	rowIDs := make(map[uuid.UUID]uuid.UUID, len(before))
	for _, row := range before {
		rowIDs[row.PouchID] = row.ID
	}

	newSplits := []actions.SplitInput{
		{PouchID: keep, Amount: decimal.RequireFromString("40.00")},
		{PouchID: resize, Amount: decimal.RequireFromString("25.00")},
		{PouchID: added, Amount: decimal.RequireFromString("30.00")},
	}
	action := &actions.UpdateTransaction{ID: create.Created.ID, Splits: &newSplits}
	require.NoError(t, perform(t, store, action))

	after, err := store.Transactions.SplitsByTransaction(context.Background(), create.Created.ID)
	require.NoError(t, err)
	require.Len(t, after, 3)
	for _, row := range after {
		switch row.PouchID {
		case keep:
			assert.Equal(t, rowIDs[keep], row.ID, "untouched split was rewritten")
		case resize:
			assert.NotEqual(t, rowIDs[resize], row.ID)
			assertDecimal(t, "25.00", row.Amount)
		case added:
			assertDecimal(t, "30.00", row.Amount)
		}
	}

	assertDecimal(t, "-40.00", pouchBalance(t, store, keep))
	assertDecimal(t, "-25.00", pouchBalance(t, store, resize))
	assertDecimal(t, "-30.00", pouchBalance(t, store, added))
	assertDecimal(t, "900.00", accountBalance(t, store, accountID))
}

func TestUpdateTransaction_MissingTransaction(t *testing.T) {
	store := newTestStorage(t)
	createTestAccount(t, store, "1000.00")

	amount := decimal.RequireFromString("10.00")
	action := &actions.UpdateTransaction{ID: uuid.Must(uuid.NewV4()), Amount: &amount}
	assert.ErrorIs(t, perform(t, store, action), errs.ErrNotFound)
}

func TestUpdateTransaction_DeletedTransaction(t *testing.T) {
	store := newTestStorage(t)
	accountID := createTestAccount(t, store, "1000.00")
	txID := createExpense(t, store, accountID, uuid.NullUUID{}, "100.00")
	require.NoError(t, perform(t, store, &actions.DeleteTransaction{ID: txID}))

	amount := decimal.RequireFromString("10.00")
	action := &actions.UpdateTransaction{ID: txID, Amount: &amount}
	assert.ErrorIs(t, perform(t, store, action), errs.ErrNotFound)
}
