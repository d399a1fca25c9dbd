package transaction

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/sqlite"
	"github.com/stephenafamo/bob/dialect/sqlite/dialect"
	"github.com/stephenafamo/bob/dialect/sqlite/sm"
	"github.com/stephenafamo/bob/mods"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/pouch-server/internal/errs"
)

var columns = []any{
	"id", "owner_id", "account_id", "pouch_id", "amount", "currency", "type",
	"description", "category", "recurring", "deleted", "created_at", "updated_at",
}

var splitColumns = []any{"id", "transaction_id", "pouch_id", "amount"}

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// FindByID returns the record regardless of its deleted flag; callers that
// must exclude soft-deleted records check the flag themselves.
func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	q := sqlite.Select(
		sm.Columns(columns...),
		sm.From("transactions"),
		sm.Where(sqlite.Quote("id").EQ(sqlite.Arg(id))),
	)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[*Transaction]())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &errs.NotFoundError{Collection: "transactions", ID: id.String()}
		}
		return nil, err
	}
	return row, nil
}

// List returns transactions matching the filter. Nil filter returns all
// active records.
func (r *Reader) List(ctx context.Context, filter *Filter) ([]*Transaction, error) {
	var queryMods []bob.Mod[*dialect.SelectQuery]
	var whereMods []mods.Where[*dialect.SelectQuery]

	includeDeleted := false
	if filter != nil {
		includeDeleted = filter.IncludeDeleted
		if filter.OwnerID != nil {
			whereMods = append(whereMods, sm.Where(sqlite.Quote("owner_id").EQ(sqlite.Arg(*filter.OwnerID))))
		}
		if filter.AccountID != nil {
			whereMods = append(whereMods, sm.Where(sqlite.Quote("account_id").EQ(sqlite.Arg(*filter.AccountID))))
		}
		if filter.PouchID != nil {
			whereMods = append(whereMods, sm.Where(sqlite.Quote("pouch_id").EQ(sqlite.Arg(*filter.PouchID))))
		}
		if filter.MaxCreationTime != nil {
			whereMods = append(whereMods, sm.Where(sqlite.Quote("created_at").LTE(sqlite.Arg(*filter.MaxCreationTime))))
		}
		if filter.Limit > 0 {
			queryMods = append(queryMods, sm.Limit(filter.Limit+1))
		}
		if filter.Offset > 0 {
			queryMods = append(queryMods, sm.Offset(filter.Offset))
		}
	}
	if !includeDeleted {
		whereMods = append(whereMods, sm.Where(sqlite.Quote("deleted").EQ(sqlite.Arg(false))))
	}
	queryMods = append(queryMods, sqlite.WhereAnd(whereMods...))
	queryMods = append(queryMods,
		sm.Columns(columns...),
		sm.From("transactions"),
		sm.OrderBy("created_at").Desc(),
		sm.OrderBy("id").Desc(),
	)
	return bob.All(ctx, r.exec, sqlite.Select(queryMods...), scan.StructMapper[*Transaction]())
}

// SplitsByTransaction returns the split rows of one transaction.
func (r *Reader) SplitsByTransaction(ctx context.Context, transactionID uuid.UUID) ([]*Split, error) {
	q := sqlite.Select(
		sm.Columns(splitColumns...),
		sm.From("transaction_splits"),
		sm.Where(sqlite.Quote("transaction_id").EQ(sqlite.Arg(transactionID))),
		sm.OrderBy("id").Asc(),
	)
	return bob.All(ctx, r.exec, q, scan.StructMapper[*Split]())
}
