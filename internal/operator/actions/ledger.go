package actions

import (
	"context"
	"sort"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/pouch-server/internal/errs"
	"github.com/carson-networks/pouch-server/internal/storage"
	"github.com/carson-networks/pouch-server/internal/storage/pouch"
	"github.com/carson-networks/pouch-server/internal/storage/transaction"
)

// SplitInput is a requested sub-allocation of a transaction amount.
type SplitInput struct {
	PouchID uuid.UUID
	Amount  decimal.Decimal
}

func splitInputsFromRows(rows []*transaction.Split) []SplitInput {
	out := make([]SplitInput, len(rows))
	for i, row := range rows {
		out[i] = SplitInput{PouchID: row.PouchID, Amount: row.Amount}
	}
	return out
}

// validateSplits enforces the split sum constraint before any mutation.
func validateSplits(amount decimal.Decimal, splits []SplitInput) error {
	var sum decimal.Decimal
	for _, s := range splits {
		if !s.Amount.IsPositive() {
			return &errs.ValidationError{Field: "splits", Reason: "split amounts must be positive"}
		}
		sum = sum.Add(s.Amount)
	}
	if sum.GreaterThan(amount) {
		return &errs.ValidationError{Field: "splits", Reason: "split sum exceeds transaction amount"}
	}
	return nil
}

// contributions returns the signed effect per pouch of a transaction: the
// split amounts when splits exist, else the full amount against the directly
// referenced pouch, else nothing.
func contributions(t transaction.Type, amount decimal.Decimal, pouchID uuid.NullUUID, splits []SplitInput) map[uuid.UUID]decimal.Decimal {
	out := make(map[uuid.UUID]decimal.Decimal)
	if len(splits) > 0 {
		for _, s := range splits {
			out[s.PouchID] = out[s.PouchID].Add(t.Effect(s.Amount))
		}
		return out
	}
	if pouchID.Valid {
		out[pouchID.UUID] = t.Effect(amount)
	}
	return out
}

func sortedPouchIDs(deltas map[uuid.UUID]decimal.Decimal) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(deltas))
	for id := range deltas {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids
}

// loadPouches resolves every pouch with a non-zero delta, validating the
// references before any balance write.
func loadPouches(ctx context.Context, writer *storage.Writer, deltas map[uuid.UUID]decimal.Decimal) (map[uuid.UUID]*pouch.Pouch, error) {
	out := make(map[uuid.UUID]*pouch.Pouch, len(deltas))
	for _, id := range sortedPouchIDs(deltas) {
		if deltas[id].IsZero() {
			continue
		}
		p, err := writer.Pouches.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		out[id] = p
	}
	return out, nil
}

// applyPouchDeltas writes the new derived balances for the loaded pouches.
func applyPouchDeltas(ctx context.Context, writer *storage.Writer, deltas map[uuid.UUID]decimal.Decimal, pouches map[uuid.UUID]*pouch.Pouch) error {
	for _, id := range sortedPouchIDs(deltas) {
		p, ok := pouches[id]
		if !ok {
			continue
		}
		if err := writer.Pouches.UpdateBalance(ctx, id, p.Balance.Add(deltas[id])); err != nil {
			return err
		}
	}
	return nil
}
