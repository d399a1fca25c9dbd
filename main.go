package main

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/pouch-server/api"
	"github.com/carson-networks/pouch-server/internal/config"
	"github.com/carson-networks/pouch-server/internal/logging"
	"github.com/carson-networks/pouch-server/internal/migrate"
	"github.com/carson-networks/pouch-server/internal/operator"
	"github.com/carson-networks/pouch-server/internal/seed"
	"github.com/carson-networks/pouch-server/internal/service"
	"github.com/carson-networks/pouch-server/internal/shard"
	"github.com/carson-networks/pouch-server/internal/storage"
)

func main() {
	logger := logging.SetupLogging()
	logrus.Info("pouch-server starting")

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}
	logging.SetLevel(logger, envConfig.LogLevel)

	ctx := context.Background()

	shards, err := shard.Open(shard.NewMap(), envConfig.ShardDSNs())
	if err != nil {
		logger.WithError(err).Fatal("shard.Open")
		return
	}
	defer shards.Close()

	engine, err := migrate.NewEngine(shards, migrate.All(), logger)
	if err != nil {
		logger.WithError(err).Fatal("migrate.NewEngine")
		return
	}
	if err := engine.Apply(ctx, nil); err != nil {
		logger.WithError(err).Fatal("migrate.Apply")
		return
	}

	if err := seed.NewLoader(shards, seed.DefaultBatches(), logger).Run(ctx); err != nil {
		logger.WithError(err).Fatal("seed.Run")
		return
	}

	dbStorage := storage.NewStorage(shards)

	delegator := operator.NewOperatorDelegator(dbStorage, 1)
	delegator.Start()
	defer delegator.Stop()

	svc := service.NewService(dbStorage, delegator)

	wg := sync.WaitGroup{}
	wg.Add(1)

	go func() {
		httpRest := api.Rest{
			Logger:  logger,
			Port:    envConfig.Port,
			Service: svc,
		}
		httpRest.Serve()
	}()

	wg.Wait()
}
