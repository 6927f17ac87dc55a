package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"annonsplats/internal/config"
)

const usage = "usage: migrate up | down [steps] | version | force <version>"

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		log.Fatal(usage)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := config.NewLogger(cfg.LogLevel, cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := config.NewPostgresDB(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	m, err := config.NewMigrator(db)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}

	if err := run(m, os.Args[1:]); err != nil {
		logger.Fatal("Migration failed", zap.Error(err))
	}

	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		logger.Info("No migrations applied")
	case err != nil:
		logger.Fatal("Failed to read schema version", zap.Error(err))
	default:
		logger.Info("Schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
	}
}

func run(m *migrate.Migrate, args []string) error {
	switch args[0] {
	case "up":
		return ignoreNoChange(m.Up())
	case "down":
		if len(args) > 1 {
			steps, err := strconv.Atoi(args[1])
			if err != nil || steps < 1 {
				return fmt.Errorf("invalid step count %q", args[1])
			}
			return ignoreNoChange(m.Steps(-steps))
		}
		return ignoreNoChange(m.Down())
	case "version":
		return nil
	case "force":
		if len(args) < 2 {
			return errors.New(usage)
		}
		version, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid version %q", args[1])
		}
		return m.Force(version)
	}
	return errors.New(usage)
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}
