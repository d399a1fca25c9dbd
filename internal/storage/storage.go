// Package storage aggregates the per-domain tables over the shard set and
// hands out multi-shard write handles.
package storage

import (
	"context"

	"github.com/carson-networks/pouch-server/internal/shard"
)

type Storage struct {
	Shards *shard.Set
	*Reader
}

func NewStorage(set *shard.Set) *Storage {
	return &Storage{
		Shards: set,
		Reader: NewReader(set),
	}
}

// Write opens one transaction per mutating shard and returns a Writer bound
// to them. Commit and Rollback apply to every opened transaction; there is
// no cross-shard atomicity (shards are independent stores), so callers
// validate everything before their first write.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	return NewWriter(ctx, s.Shards)
}
