package shard

import (
	"fmt"

	"github.com/carson-networks/pouch-server/internal/errs"
)

// Map is the static collection-to-shard binding. It is immutable after
// construction; sharding is by functional domain, never by record key.
type Map struct {
	bindings map[Collection]Shard
}

// NewMap builds the production binding. Every collection must be bound to
// exactly one shard; Validate is what makes an incomplete binding a startup
// failure rather than a call-time one.
func NewMap() *Map {
	return &Map{bindings: map[Collection]Shard{
		CollectionUsers:        ShardUser,
		CollectionAccounts:     ShardAccount,
		CollectionTransactions: ShardTransaction,
		CollectionSplits:       ShardTransaction,
		CollectionPouches:      ShardPouch,
		CollectionGoals:        ShardPouch,
		CollectionPouchShares:  ShardPouch,
		CollectionTransfers:    ShardTransfer,
	}}
}

// Resolve returns the shard owning the given collection.
func (m *Map) Resolve(c Collection) (Shard, error) {
	sh, ok := m.bindings[c]
	if !ok {
		return 0, &errs.ConfigurationError{
			Detail: fmt.Sprintf("collection %q has no shard binding", c),
		}
	}
	return sh, nil
}

// Validate checks that every known collection is bound.
func (m *Map) Validate() error {
	for _, c := range AllCollections() {
		if _, err := m.Resolve(c); err != nil {
			return err
		}
	}
	return nil
}
