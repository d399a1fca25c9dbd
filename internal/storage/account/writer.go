package account

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
		im.Into("accounts",
			"id", "owner_id", "name", "type", "currency",
			"starting_balance", "balance", "active", "created_at",
		),
		im.Values(sqlite.Arg(
			create.ID, create.OwnerID, create.Name, int16(create.Type), create.Currency,
			create.StartingBalance, create.StartingBalance, true, time.Now().UTC(),
		)),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return err
}

// UpdateBalance writes the derived balance. Only ledger actions call this.
func (w *Writer) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	q := sqlite.Update(
		um.Table("accounts"),
		um.SetCol("balance").ToArg(balance),
		um.Where(sqlite.Quote("id").EQ(sqlite.Arg(id))),
	)
	res, err := bob.Exec(ctx, w.tx, q)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return &errs.NotFoundError{Collection: "accounts", ID: id.String()}
	}
	return nil
}

// SetActive soft-activates or deactivates an account. Accounts with history
// are never hard-deleted.
func (w *Writer) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	q := sqlite.Update(
		um.Table("accounts"),
		um.SetCol("active").ToArg(active),
		um.Where(sqlite.Quote("id").EQ(sqlite.Arg(id))),
	)
	res, err := bob.Exec(ctx, w.tx, q)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return &errs.NotFoundError{Collection: "accounts", ID: id.String()}
	}
	return nil
}
