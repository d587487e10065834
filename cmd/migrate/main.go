package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"subra-settlement/config"
	"subra-settlement/migrations"
	"subra-settlement/pkg/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

func main() {
	var (
		command    string
		version    int
		configPath string
	)
	flag.StringVar(&command, "cmd", "up", "Command to run: up, down, version, force")
	flag.IntVar(&version, "v", -1, "Version for force command")
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open embedded migrations")
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, cfg.Database.MigrateURL())
	if err != nil {
		log.Fatal().Err(err).Msg("Migration init failed")
	}
	defer m.Close()

	switch command {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal().Err(err).Msg("Migration up failed")
		}
		log.Info().Msg("Migration up done")
	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal().Err(err).Msg("Migration down failed")
		}
		log.Info().Msg("Migration down done")
	case "version":
		v, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			log.Fatal().Err(err).Msg("Reading migration version failed")
		}
		log.Info().Uint("version", v).Bool("dirty", dirty).Msg("Current schema version")
	case "force":
		if version == -1 {
			log.Fatal().Msg("Version (-v) is required for force command")
		}
		if err := m.Force(version); err != nil {
			log.Fatal().Err(err).Msg("Migration force failed")
		}
		log.Info().Int("version", version).Msg("Migration version forced")
	default:
		log.Fatal().Str("cmd", command).Msg("Unknown command")
	}
}
