package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/pouch-server/internal/errs"
	"github.com/carson-networks/pouch-server/internal/storage"
	"github.com/carson-networks/pouch-server/internal/storage/transaction"
)

// UpdateTransaction patches a transaction and applies the balance delta
// new_effect - old_effect per affected account and pouch. A changed pouch
// assignment reverses the full old effect on the old pouch and applies the
// full new effect on the new one; the per-pouch delta map folds both into
// one write per pouch.
type UpdateTransaction struct {
	ID uuid.UUID

	Amount      *decimal.Decimal
	Type        *transaction.Type
	Description *string
	Category    *string
	Recurring   *bool
	PouchID     *uuid.NullUUID
	Splits      *[]SplitInput

	// Updated holds the patched record after a successful Perform.
	Updated transaction.Transaction

	IAction
}

func (a *UpdateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
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

	updated := *old
	if a.Amount != nil {
		if !a.Amount.IsPositive() {
			return &errs.ValidationError{Field: "amount", Reason: "must be positive"}
		}
		updated.Amount = *a.Amount
	}
	if a.Type != nil {
		if *a.Type != transaction.TypeIncome && *a.Type != transaction.TypeExpense {
			return &errs.ValidationError{Field: "type", Reason: "unknown transaction type"}
		}
		updated.Type = *a.Type
	}
	if a.Description != nil {
		updated.Description = *a.Description
	}
	if a.Category != nil {
		updated.Category = *a.Category
	}
	if a.Recurring != nil {
		updated.Recurring = *a.Recurring
	}
	if a.PouchID != nil {
		updated.PouchID = *a.PouchID
	}

	oldSplits := splitInputsFromRows(oldRows)
	newSplits := oldSplits
	if a.Splits != nil {
		newSplits = *a.Splits
	}
	if err := validateSplits(updated.Amount, newSplits); err != nil {
		return err
	}

	oldContrib := contributions(old.Type, old.Amount, old.PouchID, oldSplits)
	newContrib := contributions(updated.Type, updated.Amount, updated.PouchID, newSplits)
	deltas := make(map[uuid.UUID]decimal.Decimal, len(oldContrib)+len(newContrib))
	for id, effect := range newContrib {
		deltas[id] = effect
	}
	for id, effect := range oldContrib {
		deltas[id] = deltas[id].Sub(effect)
	}
	pouches, err := loadPouches(ctx, writer, deltas)
	if err != nil {
		return err
	}

	accountDelta := updated.Type.Effect(updated.Amount).Sub(old.Type.Effect(old.Amount))
	var newAccountBalance decimal.Decimal
	if !accountDelta.IsZero() {
		account, err := writer.Accounts.FindByID(ctx, old.AccountID)
		if err != nil {
			return err
		}
		newAccountBalance = account.Balance.Add(accountDelta)
	}

	if a.Splits != nil {
		// Diff against the stored rows: a row whose pouch and amount both
		// survive the patch keeps its identity, everything else is removed
		// or inserted.
		remaining := make([]*transaction.Split, len(oldRows))
		copy(remaining, oldRows)
		var added []SplitInput
		for _, s := range *a.Splits {
			matched := false
			for i, row := range remaining {
				if row != nil && row.PouchID == s.PouchID && row.Amount.Equal(s.Amount) {
					remaining[i] = nil
					matched = true
					break
				}
			}
			if !matched {
				added = append(added, s)
			}
		}
		for _, row := range remaining {
			if row == nil {
				continue
			}
			if err := writer.Transactions.DeleteSplit(ctx, row.ID); err != nil {
				return err
			}
		}
		for _, s := range added {
			splitID, err := uuid.NewV4()
			if err != nil {
				return err
			}
			split := transaction.Split{
				ID:            splitID,
				TransactionID: a.ID,
				PouchID:       s.PouchID,
				Amount:        s.Amount,
			}
			if err := writer.Transactions.InsertSplit(ctx, &split); err != nil {
				return err
			}
		}
	}
	if err := writer.Transactions.Update(ctx, &updated); err != nil {
		return err
	}
	if !accountDelta.IsZero() {
		if err := writer.Accounts.UpdateBalance(ctx, old.AccountID, newAccountBalance); err != nil {
			return err
		}
	}
	if err := applyPouchDeltas(ctx, writer, deltas, pouches); err != nil {
		return err
	}

	a.Updated = updated
	return nil
}
