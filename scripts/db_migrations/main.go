package main

import (
	"context"
	"flag"

	"github.com/sirupsen/logrus"

	server_config "github.com/carson-networks/pouch-server/internal/config"
	"github.com/carson-networks/pouch-server/internal/logging"
	"github.com/carson-networks/pouch-server/internal/migrate"
	"github.com/carson-networks/pouch-server/internal/seed"
	"github.com/carson-networks/pouch-server/internal/shard"
)

func main() {
	rollback := flag.Bool("rollback", false, "roll back the highest applied version one step instead of migrating up")
	withSeeds := flag.Bool("seed", false, "run the seed batches after migrating up")
	flag.Parse()

	logger := logging.SetupLogging()

	env, err := server_config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("ProcessEnvironmentVariables")
		return
	}
	logging.SetLevel(logger, env.LogLevel)

	ctx := context.Background()

	shards, err := shard.Open(shard.NewMap(), env.ShardDSNs())
	if err != nil {
		logrus.WithError(err).Fatal("shard.Open")
		return
	}
	defer shards.Close()

	m, err := migrate.NewEngine(shards, migrate.All(), logger)
	if err != nil {
		logrus.WithError(err).Fatal("migrate.NewEngine")
		return
	}

	preStatus, err := m.Status(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("m.Status.preStatus")
		return
	}

	if *rollback {
		err = m.RollbackOne(ctx)
	} else {
		err = m.Apply(ctx, nil)
	}
	if err != nil {
		logrus.WithError(err).Fatal()
		return
	}

	if !*rollback && *withSeeds {
		if err := seed.NewLoader(shards, seed.DefaultBatches(), logger).Run(ctx); err != nil {
			logrus.WithError(err).Fatal("seed.Run")
			return
		}
	}

	postStatus, err := m.Status(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("m.Status.postStatus")
		return
	}

	fields := logrus.Fields{}
	for _, sh := range shard.AllShards() {
		fields["pre_"+sh.String()] = preStatus[sh]
		fields["post_"+sh.String()] = postStatus[sh]
	}
	logrus.WithFields(fields).Info("Migration status")
}
