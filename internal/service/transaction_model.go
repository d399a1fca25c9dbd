package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/pouch-server/internal/operator/actions"
	"github.com/carson-networks/pouch-server/internal/storage/transaction"
)

// Transaction represents a transaction in the service layer.
type Transaction struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	AccountID   uuid.UUID
	PouchID     uuid.NullUUID
	Amount      decimal.Decimal
	Currency    string
	Type        transaction.Type
	Description string
	Category    string
	Recurring   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Splits      []Split
}

// Split is a sub-allocation of a transaction amount to a pouch.
type Split struct {
	PouchID uuid.UUID
	Amount  decimal.Decimal
}

// CreateTransactionInput is the input for creating a transaction.
type CreateTransactionInput struct {
	OwnerID     uuid.UUID
	AccountID   uuid.UUID
	Amount      decimal.Decimal
	Currency    string
	Type        transaction.Type
	Description string
	Category    string
	PouchID     uuid.NullUUID
	Recurring   bool
	Splits      []Split
}

// UpdateTransactionPatch carries the changed fields of an update; nil
// fields are left untouched. PouchID with Valid=false clears the
// assignment, Splits pointing at an empty slice removes all splits.
type UpdateTransactionPatch struct {
	Amount      *decimal.Decimal
	Type        *transaction.Type
	Description *string
	Category    *string
	Recurring   *bool
	PouchID     *uuid.NullUUID
	Splits      *[]Split
}

// TransactionCursor identifies a position in a paginated result set
// and carries the limit and maxCreationTime so subsequent pages are consistent.
type TransactionCursor struct {
	Position        int
	Limit           int
	MaxCreationTime time.Time
}

func splitsToActionInputs(splits []Split) []actions.SplitInput {
	out := make([]actions.SplitInput, len(splits))
	for i, s := range splits {
		out[i] = actions.SplitInput{PouchID: s.PouchID, Amount: s.Amount}
	}
	return out
}

func splitsFromRows(rows []*transaction.Split) []Split {
	out := make([]Split, len(rows))
	for i, row := range rows {
		out[i] = Split{PouchID: row.PouchID, Amount: row.Amount}
	}
	return out
}

func transactionFromStorage(row *transaction.Transaction, splits []Split) Transaction {
	return Transaction{
		ID:          row.ID,
		OwnerID:     row.OwnerID,
		AccountID:   row.AccountID,
		PouchID:     row.PouchID,
		Amount:      row.Amount,
		Currency:    row.Currency,
		Type:        row.Type,
		Description: row.Description,
		Category:    row.Category,
		Recurring:   row.Recurring,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
		Splits:      splits,
	}
}
