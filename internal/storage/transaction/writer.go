package transaction

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/sqlite"
	"github.com/stephenafamo/bob/dialect/sqlite/dm"
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

func (w *Writer) Insert(ctx context.Context, txn *Transaction) error {
	q := sqlite.Insert(
		im.Into("transactions",
			"id", "owner_id", "account_id", "pouch_id", "amount", "currency", "type",
			"description", "category", "recurring", "deleted", "created_at", "updated_at",
		),
		im.Values(sqlite.Arg(
			txn.ID, txn.OwnerID, txn.AccountID, txn.PouchID, txn.Amount, txn.Currency,
			int16(txn.Type), txn.Description, txn.Category, txn.Recurring, txn.Deleted,
			txn.CreatedAt, txn.UpdatedAt,
		)),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return err
}

// Update rewrites the mutable fields of an active record. The caller has
// already merged the patch into txn.
func (w *Writer) Update(ctx context.Context, txn *Transaction) error {
	q := sqlite.Update(
		um.Table("transactions"),
		um.SetCol("pouch_id").ToArg(txn.PouchID),
		um.SetCol("amount").ToArg(txn.Amount),
		um.SetCol("type").ToArg(int16(txn.Type)),
		um.SetCol("description").ToArg(txn.Description),
		um.SetCol("category").ToArg(txn.Category),
		um.SetCol("recurring").ToArg(txn.Recurring),
		um.SetCol("updated_at").ToArg(time.Now().UTC()),
		um.Where(sqlite.Quote("id").EQ(sqlite.Arg(txn.ID))),
		um.Where(sqlite.Quote("deleted").EQ(sqlite.Arg(false))),
	)
	res, err := bob.Exec(ctx, w.tx, q)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return &errs.NotFoundError{Collection: "transactions", ID: txn.ID.String()}
	}
	return nil
}

// MarkDeleted soft-deletes a record. The row stays for history; every
// balance computation and default listing excludes it from here on.
func (w *Writer) MarkDeleted(ctx context.Context, id uuid.UUID) error {
	q := sqlite.Update(
		um.Table("transactions"),
		um.SetCol("deleted").ToArg(true),
		um.SetCol("updated_at").ToArg(time.Now().UTC()),
		um.Where(sqlite.Quote("id").EQ(sqlite.Arg(id))),
		um.Where(sqlite.Quote("deleted").EQ(sqlite.Arg(false))),
	)
	res, err := bob.Exec(ctx, w.tx, q)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return &errs.NotFoundError{Collection: "transactions", ID: id.String()}
	}
	return nil
}

func (w *Writer) InsertSplit(ctx context.Context, split *Split) error {
	q := sqlite.Insert(
		im.Into("transaction_splits", "id", "transaction_id", "pouch_id", "amount"),
		im.Values(sqlite.Arg(split.ID, split.TransactionID, split.PouchID, split.Amount)),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return err
}

// DeleteSplit removes a single split row. Split rows carry no history of
// their own; the parent transaction is the durable record.
func (w *Writer) DeleteSplit(ctx context.Context, id uuid.UUID) error {
	q := sqlite.Delete(
		dm.From("transaction_splits"),
		dm.Where(sqlite.Quote("id").EQ(sqlite.Arg(id))),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return err
}
