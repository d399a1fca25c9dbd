// Package shard binds record collections to the fixed set of physical stores
// and owns the database handles for each of them.
package shard

// Shard identifies one of the five physical stores. Each shard is schema
// versioned independently and never references another shard's keys.
type Shard int8

const (
	ShardUser Shard = iota
	ShardAccount
	ShardTransaction
	ShardPouch
	ShardTransfer
)

func (s Shard) String() string {
	switch s {
	case ShardUser:
		return "user"
	case ShardAccount:
		return "account"
	case ShardTransaction:
		return "transaction"
	case ShardPouch:
		return "pouch"
	case ShardTransfer:
		return "transfer"
	}
	return "unknown"
}

// AllShards returns every shard in declaration order.
func AllShards() []Shard {
	return []Shard{ShardUser, ShardAccount, ShardTransaction, ShardPouch, ShardTransfer}
}

// Collection is the closed set of record collections. Routing by enum rather
// than by table-name string keeps an unknown collection a compile error
// instead of a runtime lookup failure.
type Collection int8

const (
	CollectionUsers Collection = iota
	CollectionAccounts
	CollectionTransactions
	CollectionSplits
	CollectionPouches
	CollectionGoals
	CollectionPouchShares
	CollectionTransfers

	collectionCount = int(CollectionTransfers) + 1
)

func (c Collection) String() string {
	switch c {
	case CollectionUsers:
		return "users"
	case CollectionAccounts:
		return "accounts"
	case CollectionTransactions:
		return "transactions"
	case CollectionSplits:
		return "transaction_splits"
	case CollectionPouches:
		return "pouches"
	case CollectionGoals:
		return "goals"
	case CollectionPouchShares:
		return "pouch_shares"
	case CollectionTransfers:
		return "transfers"
	}
	return "unknown"
}

// AllCollections returns every collection in declaration order.
func AllCollections() []Collection {
	out := make([]Collection, 0, collectionCount)
	for c := CollectionUsers; int(c) < collectionCount; c++ {
		out = append(out, c)
	}
	return out
}
