package account

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
	"id", "owner_id", "name", "type", "currency",
	"starting_balance", "balance", "active", "created_at",
}

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	q := sqlite.Select(
		sm.Columns(columns...),
		sm.From("accounts"),
		sm.Where(sqlite.Quote("id").EQ(sqlite.Arg(id))),
	)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[*Account]())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &errs.NotFoundError{Collection: "accounts", ID: id.String()}
		}
		return nil, err
	}
	return row, nil
}

// List returns accounts matching the filter. Nil filter returns all.
func (r *Reader) List(ctx context.Context, filter *Filter) ([]*Account, error) {
	var queryMods []bob.Mod[*dialect.SelectQuery]
	if filter != nil {
		var whereMods []mods.Where[*dialect.SelectQuery]
		if filter.OwnerID != nil {
			whereMods = append(whereMods, sm.Where(sqlite.Quote("owner_id").EQ(sqlite.Arg(*filter.OwnerID))))
		}
		if len(whereMods) > 0 {
			queryMods = append(queryMods, sqlite.WhereAnd(whereMods...))
		}
		if filter.Limit > 0 {
			queryMods = append(queryMods, sm.Limit(filter.Limit+1))
		}
		if filter.Offset > 0 {
			queryMods = append(queryMods, sm.Offset(filter.Offset))
		}
	}
	queryMods = append(queryMods,
		sm.Columns(columns...),
		sm.From("accounts"),
		sm.OrderBy("name").Asc(),
		sm.OrderBy("id").Asc(),
	)
	return bob.All(ctx, r.exec, sqlite.Select(queryMods...), scan.StructMapper[*Account]())
}
