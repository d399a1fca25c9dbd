package storage

import (
	"github.com/carson-networks/pouch-server/internal/shard"
	"github.com/carson-networks/pouch-server/internal/storage/account"
	"github.com/carson-networks/pouch-server/internal/storage/pouch"
	"github.com/carson-networks/pouch-server/internal/storage/transaction"
	"github.com/carson-networks/pouch-server/internal/storage/transfer"
	"github.com/carson-networks/pouch-server/internal/storage/user"
)

// Reader bundles the per-domain readers, each bound to the shard owning its
// collection.
type Reader struct {
	Users        *user.Reader
	Accounts     *account.Reader
	Pouches      *pouch.Reader
	Transactions *transaction.Reader
	Transfers    *transfer.Reader
}

func NewReader(set *shard.Set) *Reader {
	return &Reader{
		Users:        user.NewReader(set.For(shard.CollectionUsers).DB()),
		Accounts:     account.NewReader(set.For(shard.CollectionAccounts).DB()),
		Pouches:      pouch.NewReader(set.For(shard.CollectionPouches).DB()),
		Transactions: transaction.NewReader(set.For(shard.CollectionTransactions).DB()),
		Transfers:    transfer.NewReader(set.For(shard.CollectionTransfers).DB()),
	}
}
