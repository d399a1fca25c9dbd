package pouch

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/sqlite"
	"github.com/stephenafamo/bob/dialect/sqlite/im"
	"github.com/stephenafamo/bob/dialect/sqlite/um"

	"github.com/carson-networks/pouch-server/internal/errs"
	"github.com/carson-networks/pouch-server/internal/shard"
)

type Writer struct {
	tx bob.Tx
	Reader
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

func (w *Writer) Create(ctx context.Context, create *Create) error {
	q := sqlite.Insert(
		im.Into("pouches",
			"id", "owner_id", "name", "visibility", "budget_amount",
			"budget_period", "balance", "created_at",
		),
		im.Values(sqlite.Arg(
			create.ID, create.OwnerID, create.Name, int16(create.Visibility),
			create.BudgetAmount, create.BudgetPeriod, decimal.Zero, time.Now().UTC(),
		)),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return err
}

// UpdateBalance writes the derived pouch balance. Only ledger actions call
// this.
func (w *Writer) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	q := sqlite.Update(
		um.Table("pouches"),
		um.SetCol("balance").ToArg(balance),
		um.Where(sqlite.Quote("id").EQ(sqlite.Arg(id))),
	)
	res, err := bob.Exec(ctx, w.tx, q)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return &errs.NotFoundError{Collection: "pouches", ID: id.String()}
	}
	return nil
}

func (w *Writer) CreateGoal(ctx context.Context, goal *Goal) error {
	q := sqlite.Insert(
		im.Into("goals",
			"id", "owner_id", "pouch_id", "title", "target_amount", "current_amount",
			"target_date", "monthly_contribution", "created_at", "updated_at",
		),
		im.Values(sqlite.Arg(
			goal.ID, goal.OwnerID, goal.PouchID, goal.Title, goal.TargetAmount,
			goal.CurrentAmount, goal.TargetDate, goal.MonthlyContribution,
			goal.CreatedAt, goal.UpdatedAt,
		)),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return err
}

// UpdateGoal rewrites the mutable goal fields; the caller has already merged
// the patch and recomputed the monthly contribution.
func (w *Writer) UpdateGoal(ctx context.Context, goal *Goal) error {
	q := sqlite.Update(
		um.Table("goals"),
		um.SetCol("pouch_id").ToArg(goal.PouchID),
		um.SetCol("title").ToArg(goal.Title),
		um.SetCol("target_amount").ToArg(goal.TargetAmount),
		um.SetCol("current_amount").ToArg(goal.CurrentAmount),
		um.SetCol("target_date").ToArg(goal.TargetDate),
		um.SetCol("monthly_contribution").ToArg(goal.MonthlyContribution),
		um.SetCol("updated_at").ToArg(time.Now().UTC()),
		um.Where(sqlite.Quote("id").EQ(sqlite.Arg(goal.ID))),
	)
	res, err := bob.Exec(ctx, w.tx, q)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return &errs.NotFoundError{Collection: "goals", ID: goal.ID.String()}
	}
	return nil
}

func (w *Writer) CreateShare(ctx context.Context, share *Share) error {
	q := sqlite.Insert(
		im.Into("pouch_shares", "id", "pouch_id", "user_id", "role"),
		im.Values(sqlite.Arg(share.ID, share.PouchID, share.UserID, int16(share.Role))),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	if err != nil && shard.IsUniqueViolation(err) {
		return &errs.ConstraintError{Err: err}
	}
	return err
}
