package migrate

import "github.com/carson-networks/pouch-server/internal/shard"

// All returns the registered migrations in version order.
func All() []Migration {
	return []Migration{
		{
			Version: 1,
			Name:    "base_tables",
			Blocks: map[shard.Shard]Block{
				shard.ShardUser: {
					Up: []string{
						`CREATE TABLE users (
							id TEXT PRIMARY KEY,
							email TEXT NOT NULL UNIQUE,
							name TEXT NOT NULL,
							created_at TIMESTAMP NOT NULL
						)`,
					},
					Down: []string{`DROP TABLE users`},
				},
				shard.ShardAccount: {
					Up: []string{
						`CREATE TABLE accounts (
							id TEXT PRIMARY KEY,
							owner_id TEXT NOT NULL,
							name TEXT NOT NULL,
							type INTEGER NOT NULL,
							currency TEXT NOT NULL,
							starting_balance TEXT NOT NULL,
							balance TEXT NOT NULL,
							active INTEGER NOT NULL DEFAULT 1,
							created_at TIMESTAMP NOT NULL
						)`,
					},
					Down: []string{`DROP TABLE accounts`},
				},
				shard.ShardTransaction: {
					Up: []string{
						`CREATE TABLE transactions (
							id TEXT PRIMARY KEY,
							owner_id TEXT NOT NULL,
							account_id TEXT NOT NULL,
							pouch_id TEXT,
							amount TEXT NOT NULL,
							currency TEXT NOT NULL,
							type INTEGER NOT NULL,
							description TEXT NOT NULL DEFAULT '',
							category TEXT NOT NULL DEFAULT '',
							recurring INTEGER NOT NULL DEFAULT 0,
							deleted INTEGER NOT NULL DEFAULT 0,
							created_at TIMESTAMP NOT NULL,
							updated_at TIMESTAMP NOT NULL
						)`,
						`CREATE TABLE transaction_splits (
							id TEXT PRIMARY KEY,
							transaction_id TEXT NOT NULL REFERENCES transactions (id),
							pouch_id TEXT NOT NULL,
							amount TEXT NOT NULL
						)`,
					},
					Down: []string{
						`DROP TABLE transaction_splits`,
						`DROP TABLE transactions`,
					},
				},
				shard.ShardPouch: {
					Up: []string{
						`CREATE TABLE pouches (
							id TEXT PRIMARY KEY,
							owner_id TEXT NOT NULL,
							name TEXT NOT NULL,
							visibility INTEGER NOT NULL DEFAULT 0,
							budget_amount TEXT,
							budget_period TEXT,
							balance TEXT NOT NULL,
							created_at TIMESTAMP NOT NULL
						)`,
						`CREATE TABLE goals (
							id TEXT PRIMARY KEY,
							owner_id TEXT NOT NULL,
							pouch_id TEXT,
							title TEXT NOT NULL,
							target_amount TEXT NOT NULL,
							current_amount TEXT NOT NULL,
							target_date TIMESTAMP NOT NULL,
							monthly_contribution TEXT NOT NULL,
							created_at TIMESTAMP NOT NULL,
							updated_at TIMESTAMP NOT NULL
						)`,
						`CREATE TABLE pouch_shares (
							id TEXT PRIMARY KEY,
							pouch_id TEXT NOT NULL REFERENCES pouches (id),
							user_id TEXT NOT NULL,
							role INTEGER NOT NULL,
							UNIQUE (pouch_id, user_id)
						)`,
					},
					Down: []string{
						`DROP TABLE pouch_shares`,
						`DROP TABLE goals`,
						`DROP TABLE pouches`,
					},
				},
				shard.ShardTransfer: {
					Up: []string{
						`CREATE TABLE transfers (
							id TEXT PRIMARY KEY,
							owner_id TEXT NOT NULL,
							from_account_id TEXT NOT NULL,
							to_account_id TEXT NOT NULL,
							amount TEXT NOT NULL,
							currency TEXT NOT NULL,
							status INTEGER NOT NULL,
							created_at TIMESTAMP NOT NULL
						)`,
					},
					Down: []string{`DROP TABLE transfers`},
				},
			},
		},
		{
			// Additive: the down block undoes indexes only, the locale
			// column stays (sqlite column removal limitation).
			Version: 2,
			Name:    "owner_indexes",
			Blocks: map[shard.Shard]Block{
				shard.ShardUser: {
					Up: []string{
						`ALTER TABLE users ADD COLUMN locale TEXT NOT NULL DEFAULT 'en'`,
					},
					Down: []string{},
				},
				shard.ShardAccount: {
					Up:   []string{`CREATE INDEX idx_accounts_owner ON accounts (owner_id)`},
					Down: []string{`DROP INDEX idx_accounts_owner`},
				},
				shard.ShardTransaction: {
					Up: []string{
						`CREATE INDEX idx_transactions_account ON transactions (account_id)`,
						`CREATE INDEX idx_transactions_pouch ON transactions (pouch_id)`,
						`CREATE INDEX idx_splits_transaction ON transaction_splits (transaction_id)`,
					},
					Down: []string{
						`DROP INDEX idx_splits_transaction`,
						`DROP INDEX idx_transactions_pouch`,
						`DROP INDEX idx_transactions_account`,
					},
				},
				shard.ShardPouch: {
					Up: []string{
						`CREATE INDEX idx_pouches_owner ON pouches (owner_id)`,
						`CREATE INDEX idx_goals_owner ON goals (owner_id)`,
					},
					Down: []string{
						`DROP INDEX idx_goals_owner`,
						`DROP INDEX idx_pouches_owner`,
					},
				},
				shard.ShardTransfer: {
					Up:   []string{`CREATE INDEX idx_transfers_owner ON transfers (owner_id)`},
					Down: []string{`DROP INDEX idx_transfers_owner`},
				},
			},
		},
		{
			// Targets the transfer shard only.
			Version: 3,
			Name:    "transfer_status_index",
			Blocks: map[shard.Shard]Block{
				shard.ShardTransfer: {
					Up:   []string{`CREATE INDEX idx_transfers_status ON transfers (status)`},
					Down: []string{`DROP INDEX idx_transfers_status`},
				},
			},
		},
	}
}
