package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/pouch-server/internal/logging"
	"github.com/carson-networks/pouch-server/internal/migrate"
	"github.com/carson-networks/pouch-server/internal/shard"
)

func newMigratedSet(t *testing.T) *shard.Set {
	t.Helper()

	dir := t.TempDir()
	dsns := make(map[shard.Shard]string)
	for _, sh := range shard.AllShards() {
		dsns[sh] = shard.FileDSN(dir, sh)
	}

	set, err := shard.Open(shard.NewMap(), dsns)
	require.NoError(t, err)
	t.Cleanup(func() { _ = set.Close() })

	engine, err := migrate.NewEngine(set, migrate.All(), logging.SetupLogging())
	require.NoError(t, err)
	require.NoError(t, engine.Apply(context.Background(), nil))
	return set
}

func countRows(t *testing.T, set *shard.Set, sh shard.Shard, table string) int {
	t.Helper()

	row := set.Executor(sh).DB().QueryRowContext(context.Background(), "SELECT count(*) FROM "+table)
	var n int
	require.NoError(t, row.Scan(&n))
	return n
}

func TestLoader_SeedsBaseline(t *testing.T) {
	set := newMigratedSet(t)
	loader := NewLoader(set, DefaultBatches(), logging.SetupLogging())

	require.NoError(t, loader.Run(context.Background()))

	assert.Equal(t, 1, countRows(t, set, shard.ShardUser, "users"))
	assert.Equal(t, 2, countRows(t, set, shard.ShardAccount, "accounts"))
	assert.Equal(t, 2, countRows(t, set, shard.ShardPouch, "pouches"))
	assert.Equal(t, 1, countRows(t, set, shard.ShardPouch, "goals"))
}

func TestLoader_RunTwiceIsIdempotent(t *testing.T) {
	set := newMigratedSet(t)
	loader := NewLoader(set, DefaultBatches(), logging.SetupLogging())
	ctx := context.Background()

	require.NoError(t, loader.Run(ctx))
	require.NoError(t, loader.Run(ctx))

	assert.Equal(t, 1, countRows(t, set, shard.ShardUser, "users"))
	assert.Equal(t, 2, countRows(t, set, shard.ShardAccount, "accounts"))
}

func TestLoader_BatchesRunInNumericOrder(t *testing.T) {
	set := newMigratedSet(t)

	// Registered out of order on purpose; batch 1 creates the row batch 2
	// updates, so order is observable.
	batches := []Batch{
		{
			Number:     2,
			Shard:      shard.ShardUser,
			Name:       "rename",
			Statements: []string{`UPDATE users SET name = 'Renamed' WHERE id = '` + DemoUserID + `'`},
		},
		{
			Number: 1,
			Shard:  shard.ShardUser,
			Name:   "user",
			Statements: []string{
				`INSERT INTO users (id, email, name, created_at)
				 VALUES ('` + DemoUserID + `', 'demo@pouch.local', 'Demo User', '` + seedCreatedAt + `')`,
			},
		},
	}

	loader := NewLoader(set, batches, logging.SetupLogging())
	require.NoError(t, loader.Run(context.Background()))

	row := set.Executor(shard.ShardUser).DB().QueryRowContext(context.Background(),
		"SELECT name FROM users WHERE id = ?", DemoUserID)
	var name string
	require.NoError(t, row.Scan(&name))
	assert.Equal(t, "Renamed", name)
}

func TestLoader_FailureNamesBatchAndShard(t *testing.T) {
	set := newMigratedSet(t)

	batches := []Batch{
		{
			Number:     7,
			Shard:      shard.ShardPouch,
			Name:       "broken",
			Statements: []string{`INSERT INTO missing_table (id) VALUES ('x')`},
		},
	}

	loader := NewLoader(set, batches, logging.SetupLogging())
	err := loader.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seed batch 7")
	assert.Contains(t, err.Error(), "shard pouch")
}
