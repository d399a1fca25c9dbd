package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/pouch-server/internal/errs"
	"github.com/carson-networks/pouch-server/internal/storage"
	"github.com/carson-networks/pouch-server/internal/storage/transfer"
)

// CreateTransfer records a movement between two accounts and mutates both
// balances symmetrically: the source is debited, the destination credited.
type CreateTransfer struct {
	OwnerID       uuid.UUID
	FromAccountID uuid.UUID
	ToAccountID   uuid.UUID
	Amount        decimal.Decimal
	Currency      string

	// Created holds the persisted record after a successful Perform.
	Created transfer.Transfer

	IAction
}

func (a *CreateTransfer) Perform(ctx context.Context, writer *storage.Writer) error {
	if !a.Amount.IsPositive() {
		return &errs.ValidationError{Field: "amount", Reason: "must be positive"}
	}
	if a.Currency == "" {
		return &errs.ValidationError{Field: "currency", Reason: "must not be empty"}
	}
	if a.FromAccountID == a.ToAccountID {
		return &errs.ValidationError{Field: "toAccountId", Reason: "must differ from source account"}
	}

	from, err := writer.Accounts.FindByID(ctx, a.FromAccountID)
	if err != nil {
		return err
	}
	to, err := writer.Accounts.FindByID(ctx, a.ToAccountID)
	if err != nil {
		return err
	}
	if !from.Active || !to.Active {
		return &errs.ValidationError{Field: "accountId", Reason: "account is inactive"}
	}

	id, err := uuid.NewV4()
	if err != nil {
		return err
	}
	rec := transfer.Transfer{
		ID:            id,
		OwnerID:       a.OwnerID,
		FromAccountID: a.FromAccountID,
		ToAccountID:   a.ToAccountID,
		Amount:        a.Amount,
		Currency:      a.Currency,
		Status:        transfer.StatusCompleted,
		CreatedAt:     time.Now().UTC(),
	}
	if err := writer.Transfers.Insert(ctx, &rec); err != nil {
		return err
	}

	// Both accounts live on the account shard, so the two balance writes
	// share one transaction.
	if err := writer.Accounts.UpdateBalance(ctx, a.FromAccountID, from.Balance.Sub(a.Amount)); err != nil {
		return err
	}
	if err := writer.Accounts.UpdateBalance(ctx, a.ToAccountID, to.Balance.Add(a.Amount)); err != nil {
		return err
	}

	a.Created = rec
	return nil
}
