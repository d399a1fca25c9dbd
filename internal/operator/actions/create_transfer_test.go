package actions_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/pouch-server/internal/errs"
	"github.com/carson-networks/pouch-server/internal/operator/actions"
	"github.com/carson-networks/pouch-server/internal/storage/transfer"
)

func TestCreateTransfer_MovesBothBalances(t *testing.T) {
	store := newTestStorage(t)
	fromID := createTestAccount(t, store, "500.00")
	toID := createTestAccount(t, store, "100.00")

	action := &actions.CreateTransfer{
		OwnerID:       testOwnerID,
		FromAccountID: fromID,
		ToAccountID:   toID,
		Amount:        decimal.RequireFromString("150.00"),
		Currency:      "USD",
	}
	require.NoError(t, perform(t, store, action))

	assertDecimal(t, "350.00", accountBalance(t, store, fromID))
	assertDecimal(t, "250.00", accountBalance(t, store, toID))
	assert.Equal(t, transfer.StatusCompleted, action.Created.Status)
}

func TestCreateTransfer_SameAccountRejected(t *testing.T) {
	store := newTestStorage(t)
	accountID := createTestAccount(t, store, "500.00")

	action := &actions.CreateTransfer{
		OwnerID:       testOwnerID,
		FromAccountID: accountID,
		ToAccountID:   accountID,
		Amount:        decimal.RequireFromString("10.00"),
		Currency:      "USD",
	}
	assert.ErrorIs(t, perform(t, store, action), errs.ErrValidation)
	assertDecimal(t, "500.00", accountBalance(t, store, accountID))
}

func TestCreateTransfer_InactiveAccountRejected(t *testing.T) {
	store := newTestStorage(t)
	fromID := createTestAccount(t, store, "500.00")
	toID := createTestAccount(t, store, "100.00")
	require.NoError(t, perform(t, store, &actions.DeactivateAccount{ID: toID}))

	action := &actions.CreateTransfer{
		OwnerID:       testOwnerID,
		FromAccountID: fromID,
		ToAccountID:   toID,
		Amount:        decimal.RequireFromString("10.00"),
		Currency:      "USD",
	}
	assert.ErrorIs(t, perform(t, store, action), errs.ErrValidation)
	assertDecimal(t, "500.00", accountBalance(t, store, fromID))
	assertDecimal(t, "100.00", accountBalance(t, store, toID))
}

func TestCreateTransfer_NonPositiveAmountRejected(t *testing.T) {
	store := newTestStorage(t)
	fromID := createTestAccount(t, store, "500.00")
	toID := createTestAccount(t, store, "100.00")

	action := &actions.CreateTransfer{
		OwnerID:       testOwnerID,
		FromAccountID: fromID,
		ToAccountID:   toID,
		Amount:        decimal.Zero,
		Currency:      "USD",
	}
	assert.ErrorIs(t, perform(t, store, action), errs.ErrValidation)
}
