package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/pouch-server/internal/errs"
	"github.com/carson-networks/pouch-server/internal/storage"
	"github.com/carson-networks/pouch-server/internal/storage/transaction"
)

type CreateTransaction struct {
	OwnerID     uuid.UUID
	AccountID   uuid.UUID
	Amount      decimal.Decimal
	Currency    string
	Type        transaction.Type
	Description string
	Category    string
	PouchID     uuid.NullUUID
	Recurring   bool
	Splits      []SplitInput

	// Created holds the persisted record after a successful Perform.
	Created transaction.Transaction

	IAction
}

func (a *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	if !a.Amount.IsPositive() {
		return &errs.ValidationError{Field: "amount", Reason: "must be positive"}
	}
	if a.Currency == "" {
		return &errs.ValidationError{Field: "currency", Reason: "must not be empty"}
	}
	if a.Type != transaction.TypeIncome && a.Type != transaction.TypeExpense {
		return &errs.ValidationError{Field: "type", Reason: "unknown transaction type"}
	}
	if err := validateSplits(a.Amount, a.Splits); err != nil {
		return err
	}

	account, err := writer.Accounts.FindByID(ctx, a.AccountID)
	if err != nil {
		return err
	}
	if !account.Active {
		return &errs.ValidationError{Field: "accountId", Reason: "account is inactive"}
	}

	deltas := contributions(a.Type, a.Amount, a.PouchID, a.Splits)
	pouches, err := loadPouches(ctx, writer, deltas)
	if err != nil {
		return err
	}

	id, err := uuid.NewV4()
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	txn := transaction.Transaction{
		ID:          id,
		OwnerID:     a.OwnerID,
		AccountID:   a.AccountID,
		PouchID:     a.PouchID,
		Amount:      a.Amount,
		Currency:    a.Currency,
		Type:        a.Type,
		Description: a.Description,
		Category:    a.Category,
		Recurring:   a.Recurring,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := writer.Transactions.Insert(ctx, &txn); err != nil {
		return err
	}
	for _, s := range a.Splits {
		splitID, err := uuid.NewV4()
		if err != nil {
			return err
		}
		split := transaction.Split{
			ID:            splitID,
			TransactionID: id,
			PouchID:       s.PouchID,
			Amount:        s.Amount,
		}
		if err := writer.Transactions.InsertSplit(ctx, &split); err != nil {
			return err
		}
	}

	newBalance := account.Balance.Add(a.Type.Effect(a.Amount))
	if err := writer.Accounts.UpdateBalance(ctx, a.AccountID, newBalance); err != nil {
		return err
	}
	if err := applyPouchDeltas(ctx, writer, deltas, pouches); err != nil {
		return err
	}

	a.Created = txn
	return nil
}
