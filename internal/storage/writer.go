package storage

import (
	"context"
	"errors"

	"github.com/stephenafamo/bob"

	"github.com/carson-networks/pouch-server/internal/shard"
	"github.com/carson-networks/pouch-server/internal/storage/account"
	"github.com/carson-networks/pouch-server/internal/storage/pouch"
	"github.com/carson-networks/pouch-server/internal/storage/transaction"
	"github.com/carson-networks/pouch-server/internal/storage/transfer"
)

// Shards a ledger mutation may write to. The record shards commit ahead of
// the balance shards so the ledger records stay authoritative if a later
// commit fails.
var writeOrder = []shard.Shard{
	shard.ShardTransaction,
	shard.ShardTransfer,
	shard.ShardAccount,
	shard.ShardPouch,
}

// Writer is a multi-shard write handle: one transaction per mutating shard,
// with the domain writers bound to their shard's transaction.
type Writer struct {
	txs map[shard.Shard]bob.Tx

	Accounts     *account.Writer
	Pouches      *pouch.Writer
	Transactions *transaction.Writer
	Transfers    *transfer.Writer
}

func NewWriter(ctx context.Context, set *shard.Set) (*Writer, error) {
	txs := make(map[shard.Shard]bob.Tx, len(writeOrder))
	for _, sh := range writeOrder {
		tx, err := set.Executor(sh).Begin(ctx)
		if err != nil {
			for _, open := range txs {
				_ = open.Rollback(ctx)
			}
			return nil, err
		}
		txs[sh] = tx
	}

	return &Writer{
		txs:          txs,
		Accounts:     account.NewWriter(txs[shard.ShardAccount]),
		Pouches:      pouch.NewWriter(txs[shard.ShardPouch]),
		Transactions: transaction.NewWriter(txs[shard.ShardTransaction]),
		Transfers:    transfer.NewWriter(txs[shard.ShardTransfer]),
	}, nil
}

func (w *Writer) Commit(ctx context.Context) error {
	var errList []error
	for _, sh := range writeOrder {
		if err := w.txs[sh].Commit(ctx); err != nil {
			errList = append(errList, err)
		}
	}
	return errors.Join(errList...)
}

func (w *Writer) Rollback(ctx context.Context) error {
	var errList []error
	for _, sh := range writeOrder {
		if err := w.txs[sh].Rollback(ctx); err != nil {
			errList = append(errList, err)
		}
	}
	return errors.Join(errList...)
}
