package transfer

import (
	"context"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/sqlite"
	"github.com/stephenafamo/bob/dialect/sqlite/im"
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

func (w *Writer) Insert(ctx context.Context, t *Transfer) error {
	q := sqlite.Insert(
		im.Into("transfers",
			"id", "owner_id", "from_account_id", "to_account_id",
			"amount", "currency", "status", "created_at",
		),
		im.Values(sqlite.Arg(
			t.ID, t.OwnerID, t.FromAccountID, t.ToAccountID,
			t.Amount, t.Currency, int16(t.Status), t.CreatedAt,
		)),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return err
}
