// Package user stores user records. Credential handling lives outside this
// core; only identity and profile fields are kept here.
package user

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/sqlite"
	"github.com/stephenafamo/bob/dialect/sqlite/im"
	"github.com/stephenafamo/bob/dialect/sqlite/sm"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/pouch-server/internal/errs"
	"github.com/carson-networks/pouch-server/internal/shard"
)

type User struct {
	ID        uuid.UUID `db:"id"`
	Email     string    `db:"email"`
	Name      string    `db:"name"`
	Locale    string    `db:"locale"`
	CreatedAt time.Time `db:"created_at"`
}

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	q := sqlite.Select(
		sm.Columns("id", "email", "name", "locale", "created_at"),
		sm.From("users"),
		sm.Where(sqlite.Quote("id").EQ(sqlite.Arg(id))),
	)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[*User]())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &errs.NotFoundError{Collection: "users", ID: id.String()}
		}
		return nil, err
	}
	return row, nil
}

// Create inserts a user directly against the user shard. User creation does
// not pass through the ledger operator; it has no balance effects.
func (r *Reader) Create(ctx context.Context, u *User) error {
	q := sqlite.Insert(
		im.Into("users", "id", "email", "name", "locale", "created_at"),
		im.Values(sqlite.Arg(u.ID, u.Email, u.Name, u.Locale, u.CreatedAt)),
	)
	_, err := bob.Exec(ctx, r.exec, q)
	if err != nil && shard.IsUniqueViolation(err) {
		return &errs.ConstraintError{Err: err}
	}
	return err
}
