package shard

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/stephenafamo/bob"
	sqlite "modernc.org/sqlite"
)

// sqlite extended result codes for uniqueness violations.
const (
	sqliteConstraint           = 19
	sqliteConstraintPrimaryKey = 1555
	sqliteConstraintUnique     = 2067
)

// Executor is the per-shard connection handle. All physical operations for a
// shard go through its Executor; no operation may span two of them.
type Executor struct {
	shard Shard
	sqlDB *sql.DB
	db    bob.DB
}

func (e *Executor) Shard() Shard { return e.shard }

// DB returns the bob executor for query building and scanning.
func (e *Executor) DB() bob.DB { return e.db }

// Begin opens a transaction scoped to this shard only.
func (e *Executor) Begin(ctx context.Context) (bob.Tx, error) {
	return e.db.BeginTx(ctx, nil)
}

// Exec runs raw statements in order, used by the migration engine and the
// seed loader. Statements do not share a transaction; callers that need
// atomicity open one via Begin.
func (e *Executor) Exec(ctx context.Context, stmts ...string) error {
	for _, stmt := range stmts {
		if _, err := e.sqlDB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("shard %s: %w", e.shard, err)
		}
	}
	return nil
}

func (e *Executor) Close() error { return e.sqlDB.Close() }

// Set owns one Executor per shard, resolved through the Map once at startup.
type Set struct {
	byShard      map[Shard]*Executor
	byCollection map[Collection]*Executor
}

// FileDSN returns the sqlite DSN for a shard's database file under dir.
func FileDSN(dir string, sh Shard) string {
	return "file:" + filepath.Join(dir, sh.String()+".db") +
		"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)&_time_format=sqlite"
}

// Open opens every shard store and resolves every collection binding.
// A collection without a binding fails here, before any traffic.
func Open(m *Map, dsns map[Shard]string) (*Set, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	set := &Set{
		byShard:      make(map[Shard]*Executor, len(AllShards())),
		byCollection: make(map[Collection]*Executor, collectionCount),
	}
	for _, sh := range AllShards() {
		dsn, ok := dsns[sh]
		if !ok {
			set.close()
			return nil, fmt.Errorf("shard %s: no DSN configured", sh)
		}
		sqlDB, err := sql.Open("sqlite", dsn)
		if err != nil {
			set.close()
			return nil, fmt.Errorf("shard %s: %w", sh, err)
		}
		set.byShard[sh] = &Executor{shard: sh, sqlDB: sqlDB, db: bob.NewDB(sqlDB)}
	}

	for _, c := range AllCollections() {
		sh, err := m.Resolve(c)
		if err != nil {
			set.close()
			return nil, err
		}
		set.byCollection[c] = set.byShard[sh]
	}
	return set, nil
}

// For returns the executor owning the given collection.
func (s *Set) For(c Collection) *Executor { return s.byCollection[c] }

// Executor returns the handle for a shard, for schema-level work.
func (s *Set) Executor(sh Shard) *Executor { return s.byShard[sh] }

func (s *Set) Close() error {
	var errList []error
	for _, e := range s.byShard {
		if err := e.Close(); err != nil {
			errList = append(errList, err)
		}
	}
	return errors.Join(errList...)
}

func (s *Set) close() { _ = s.Close() }

// IsUniqueViolation reports whether err is a sqlite uniqueness or primary
// key constraint failure.
func IsUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	code := se.Code()
	return code == sqliteConstraintUnique ||
		code == sqliteConstraintPrimaryKey ||
		code == sqliteConstraint
}
