package config

import (
	"os"
	"strings"

	"github.com/carson-networks/pouch-server/internal/shard"
)

type Config struct {
	DataDir  string
	Port     string
	LogLevel string

	// ShardDSN overrides the file DSN for individual shards, keyed by
	// shard name. Populated from POUCH_SHARD_<NAME>_DSN.
	ShardDSN map[string]string
}

func ProcessEnvironmentVariables() (*Config, error) {
	// In all cases the default behavior should be for the docker compose setup
	env := Config{
		DataDir:  "./data",
		Port:     "9446",
		LogLevel: "info",
		ShardDSN: map[string]string{},
	}

	envDataDir := os.Getenv("POUCH_DATA_DIR")
	envPort := os.Getenv("POUCH_PORT")
	envLogLevel := os.Getenv("POUCH_LOG_LEVEL")

	if len(envDataDir) != 0 {
		env.DataDir = envDataDir
	}

	if len(envPort) != 0 {
		env.Port = envPort
	}

	if len(envLogLevel) != 0 {
		env.LogLevel = envLogLevel
	}

	for _, sh := range shard.AllShards() {
		key := "POUCH_SHARD_" + strings.ToUpper(sh.String()) + "_DSN"
		if dsn := os.Getenv(key); len(dsn) != 0 {
			env.ShardDSN[sh.String()] = dsn
		}
	}

	return &env, nil
}

// ShardDSNs resolves the DSN for every shard, applying overrides over the
// default per-shard database file under DataDir.
func (c *Config) ShardDSNs() map[shard.Shard]string {
	dsns := make(map[shard.Shard]string, len(shard.AllShards()))
	for _, sh := range shard.AllShards() {
		if dsn, ok := c.ShardDSN[sh.String()]; ok {
			dsns[sh] = dsn
			continue
		}
		dsns[sh] = shard.FileDSN(c.DataDir, sh)
	}
	return dsns
}
