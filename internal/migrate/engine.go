// Package migrate applies numbered, reversible, shard-targeted schema
// changes and tracks the applied-version set per shard.
package migrate

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/pouch-server/internal/errs"
	"github.com/carson-networks/pouch-server/internal/shard"
)

// Block holds the forward and backward statements of one migration for one
// shard. Down blocks of additive changes may omit column removal (sqlite
// cannot drop columns portably) and only undo secondary structures.
type Block struct {
	Up   []string
	Down []string
}

// Migration is one schema-change unit. Shards absent from Blocks are
// untouched by it.
type Migration struct {
	Version uint
	Name    string
	Blocks  map[shard.Shard]Block
}

const stateTable = "pouch_schema_migrations"

var createStateTable = `CREATE TABLE IF NOT EXISTS ` + stateTable + ` (
	version INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	applied_at TIMESTAMP NOT NULL
)`

// Engine applies and rolls back migrations across the shard set. Runs are
// serialized by a mutex so a {shard, version} transition cannot race a
// concurrent run in the same process.
type Engine struct {
	mu         sync.Mutex
	set        *shard.Set
	migrations []Migration
	logger     *logrus.Logger
}

func NewEngine(set *shard.Set, migrations []Migration, logger *logrus.Logger) (*Engine, error) {
	sorted := make([]Migration, len(migrations))
	copy(sorted, migrations)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Version < sorted[j].Version })

	seen := make(map[uint]bool, len(sorted))
	for _, m := range sorted {
		if m.Version == 0 {
			return nil, fmt.Errorf("migration %q: version 0 is reserved", m.Name)
		}
		if seen[m.Version] {
			return nil, fmt.Errorf("duplicate migration version %d", m.Version)
		}
		seen[m.Version] = true
	}

	return &Engine{set: set, migrations: sorted, logger: logger}, nil
}

// Apply brings every shard up to target (or to the latest registered version
// when target is nil). A shard where a version is already applied is skipped
// for that version. A failing shard stops receiving versions for the rest of
// the run; sibling shards continue independently, and every failure is
// reported as a MigrationError in the joined result.
func (e *Engine) Apply(ctx context.Context, target *uint) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	applied, err := e.loadApplied(ctx)
	if err != nil {
		return err
	}

	halted := make(map[shard.Shard]bool)
	var failures []error

	for _, m := range e.migrations {
		if target != nil && m.Version > *target {
			break
		}
		for _, sh := range shard.AllShards() {
			block, targeted := m.Blocks[sh]
			if !targeted || halted[sh] {
				continue
			}
			if applied[sh][m.Version] {
				continue
			}
			if err := e.applyBlock(ctx, sh, m, block.Up); err != nil {
				failures = append(failures, &errs.MigrationError{
					Shard:   sh.String(),
					Version: m.Version,
					Err:     err,
				})
				halted[sh] = true
				continue
			}
			e.logger.WithFields(logrus.Fields{
				"shard":   sh.String(),
				"version": m.Version,
				"name":    m.Name,
			}).Info("Migrate.Apply.applied")
		}
	}

	return errors.Join(failures...)
}

// RollbackOne moves the highest applied version back one step on every shard
// it targeted. Never more than one step per call.
func (e *Engine) RollbackOne(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	applied, err := e.loadApplied(ctx)
	if err != nil {
		return err
	}

	var highest uint
	for _, versions := range applied {
		for v := range versions {
			if v > highest {
				highest = v
			}
		}
	}
	if highest == 0 {
		e.logger.Warn("Migrate.RollbackOne.nothing applied")
		return nil
	}

	var mig *Migration
	for i := range e.migrations {
		if e.migrations[i].Version == highest {
			mig = &e.migrations[i]
			break
		}
	}
	if mig == nil {
		return fmt.Errorf("applied version %d has no registered migration", highest)
	}

	var failures []error
	for _, sh := range shard.AllShards() {
		block, targeted := mig.Blocks[sh]
		if !targeted || !applied[sh][highest] {
			continue
		}
		if err := e.rollbackBlock(ctx, sh, *mig, block.Down); err != nil {
			failures = append(failures, &errs.MigrationError{
				Shard:   sh.String(),
				Version: highest,
				Err:     err,
			})
			continue
		}
		e.logger.WithFields(logrus.Fields{
			"shard":   sh.String(),
			"version": highest,
			"name":    mig.Name,
		}).Info("Migrate.RollbackOne.reverted")
	}

	return errors.Join(failures...)
}

// Status reports the highest applied version per shard, zero when none.
func (e *Engine) Status(ctx context.Context) (map[shard.Shard]uint, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	applied, err := e.loadApplied(ctx)
	if err != nil {
		return nil, err
	}

	status := make(map[shard.Shard]uint, len(applied))
	for sh, versions := range applied {
		var highest uint
		for v := range versions {
			if v > highest {
				highest = v
			}
		}
		status[sh] = highest
	}
	return status, nil
}

func (e *Engine) loadApplied(ctx context.Context) (map[shard.Shard]map[uint]bool, error) {
	applied := make(map[shard.Shard]map[uint]bool, len(shard.AllShards()))
	for _, sh := range shard.AllShards() {
		exec := e.set.Executor(sh)
		if err := exec.Exec(ctx, createStateTable); err != nil {
			return nil, err
		}
		versions, err := appliedVersions(ctx, exec)
		if err != nil {
			return nil, fmt.Errorf("shard %s: %w", sh, err)
		}
		applied[sh] = versions
	}
	return applied, nil
}

// applyBlock runs the forward statements and records the version in one
// transaction, so the applied-state stays unchanged when any statement fails.
func (e *Engine) applyBlock(ctx context.Context, sh shard.Shard, m Migration, up []string) error {
	tx, err := e.set.Executor(sh).Begin(ctx)
	if err != nil {
		return err
	}
	for _, stmt := range up {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback(ctx)
			return err
		}
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO "+stateTable+" (version, name, applied_at) VALUES (?, ?, ?)",
		int64(m.Version), m.Name, time.Now().UTC(),
	); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

func (e *Engine) rollbackBlock(ctx context.Context, sh shard.Shard, m Migration, down []string) error {
	tx, err := e.set.Executor(sh).Begin(ctx)
	if err != nil {
		return err
	}
	for _, stmt := range down {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback(ctx)
			return err
		}
	}
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM "+stateTable+" WHERE version = ?", int64(m.Version),
	); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

func appliedVersions(ctx context.Context, exec *shard.Executor) (map[uint]bool, error) {
	rows, err := exec.DB().QueryContext(ctx, "SELECT version FROM "+stateTable)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	versions := make(map[uint]bool)
	for rows.Next() {
		var v int64
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		versions[uint(v)] = true
	}
	return versions, rows.Err()
}
