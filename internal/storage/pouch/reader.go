package pouch

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

var pouchColumns = []any{
	"id", "owner_id", "name", "visibility", "budget_amount",
	"budget_period", "balance", "created_at",
}

var goalColumns = []any{
	"id", "owner_id", "pouch_id", "title", "target_amount", "current_amount",
	"target_date", "monthly_contribution", "created_at", "updated_at",
}

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*Pouch, error) {
	q := sqlite.Select(
		sm.Columns(pouchColumns...),
		sm.From("pouches"),
		sm.Where(sqlite.Quote("id").EQ(sqlite.Arg(id))),
	)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[*Pouch]())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &errs.NotFoundError{Collection: "pouches", ID: id.String()}
		}
		return nil, err
	}
	return row, nil
}

func (r *Reader) List(ctx context.Context, filter *Filter) ([]*Pouch, error) {
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
		sm.Columns(pouchColumns...),
		sm.From("pouches"),
		sm.OrderBy("name").Asc(),
		sm.OrderBy("id").Asc(),
	)
	return bob.All(ctx, r.exec, sqlite.Select(queryMods...), scan.StructMapper[*Pouch]())
}

func (r *Reader) FindGoalByID(ctx context.Context, id uuid.UUID) (*Goal, error) {
	q := sqlite.Select(
		sm.Columns(goalColumns...),
		sm.From("goals"),
		sm.Where(sqlite.Quote("id").EQ(sqlite.Arg(id))),
	)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[*Goal]())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &errs.NotFoundError{Collection: "goals", ID: id.String()}
		}
		return nil, err
	}
	return row, nil
}

func (r *Reader) ListGoals(ctx context.Context, ownerID uuid.UUID) ([]*Goal, error) {
	q := sqlite.Select(
		sm.Columns(goalColumns...),
		sm.From("goals"),
		sm.Where(sqlite.Quote("owner_id").EQ(sqlite.Arg(ownerID))),
		sm.OrderBy("target_date").Asc(),
		sm.OrderBy("id").Asc(),
	)
	return bob.All(ctx, r.exec, q, scan.StructMapper[*Goal]())
}

func (r *Reader) SharesByPouch(ctx context.Context, pouchID uuid.UUID) ([]*Share, error) {
	q := sqlite.Select(
		sm.Columns("id", "pouch_id", "user_id", "role"),
		sm.From("pouch_shares"),
		sm.Where(sqlite.Quote("pouch_id").EQ(sqlite.Arg(pouchID))),
		sm.OrderBy("id").Asc(),
	)
	return bob.All(ctx, r.exec, q, scan.StructMapper[*Share]())
}
