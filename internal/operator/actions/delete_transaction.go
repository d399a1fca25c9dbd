package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/pouch-server/internal/errs"
	"github.com/carson-networks/pouch-server/internal/storage"
)

// DeleteTransaction soft-deletes a record and applies the negation of its
// stored effect to its account and to every pouch it touched, directly or
// via splits.
type DeleteTransaction struct {
	ID uuid.UUID

	IAction
}

func (a *DeleteTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	old, err := writer.Transactions.FindByID(ctx, a.ID)
	if err != nil {
		return err
	}
	if old.Deleted {
		return &errs.NotFoundError{Collection: "transactions", ID: a.ID.String()}
	}
	oldRows, err := writer.Transactions.SplitsByTransaction(ctx, a.ID)
	if err != nil {
		return err
	}

	deltas := contributions(old.Type, old.Amount, old.PouchID, splitInputsFromRows(oldRows))
	for id, effect := range deltas {
		deltas[id] = effect.Neg()
	}
	pouches, err := loadPouches(ctx, writer, deltas)
	if err != nil {
		return err
	}
	account, err := writer.Accounts.FindByID(ctx, old.AccountID)
	if err != nil {
		return err
	}

	if err := writer.Transactions.MarkDeleted(ctx, a.ID); err != nil {
		return err
	}
	newBalance := account.Balance.Sub(old.Type.Effect(old.Amount))
	if err := writer.Accounts.UpdateBalance(ctx, old.AccountID, newBalance); err != nil {
		return err
	}
	return applyPouchDeltas(ctx, writer, deltas, pouches)
}
