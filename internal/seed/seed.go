// Package seed populates baseline data. Batches run in ascending numeric
// order; a batch may reference identifiers minted by an earlier batch on a
// different shard, which is why every seeded id is fixed rather than
// generated (shards cannot enforce referential integrity across stores).
package seed

import (
	"context"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/pouch-server/internal/shard"
)

// Batch is one numbered, idempotent insert script against a single shard.
type Batch struct {
	Number     int
	Shard      shard.Shard
	Name       string
	Statements []string
}

type Loader struct {
	set     *shard.Set
	batches []Batch
	logger  *logrus.Logger
}

func NewLoader(set *shard.Set, batches []Batch, logger *logrus.Logger) *Loader {
	sorted := make([]Batch, len(batches))
	copy(sorted, batches)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Number < sorted[j].Number })
	return &Loader{set: set, batches: sorted, logger: logger}
}

// Run executes every batch in order. A uniqueness violation means the row is
// already seeded and is skipped; any other error aborts with the batch
// number and shard name.
func (l *Loader) Run(ctx context.Context) error {
	for _, b := range l.batches {
		exec := l.set.Executor(b.Shard)
		skipped := 0
		for _, stmt := range b.Statements {
			err := exec.Exec(ctx, stmt)
			if err == nil {
				continue
			}
			if shard.IsUniqueViolation(err) {
				skipped++
				continue
			}
			return fmt.Errorf("seed batch %d (%s) on shard %s: %w", b.Number, b.Name, b.Shard, err)
		}
		l.logger.WithFields(logrus.Fields{
			"batch":   b.Number,
			"name":    b.Name,
			"shard":   b.Shard.String(),
			"skipped": skipped,
		}).Info("Seed.Run.batch complete")
	}
	return nil
}
