package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/desertthunder/fakefy/internal/repositories"
	"github.com/desertthunder/fakefy/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup creates the config file when missing, then initializes both stores and runs migrations.
//
// With --rollback it reverts the latest migration of both stores instead, and with --clear-session it empties
// the session store after initializing it.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	var config *shared.Config
	if _, err := os.Stat(configPath); err == nil {
		if config, err = shared.LoadConfig(configPath); err != nil {
			r.logger.Warn("failed to load config, using defaults", "error", err)
			config = shared.DefaultConfig()
		}
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
			config = shared.DefaultConfig()
		} else {
			r.logger.Info("config file created", "path", configPath)
			if config, err = shared.LoadConfig(configPath); err != nil {
				r.logger.Warn("failed to load created config, using defaults", "error", err)
				config = shared.DefaultConfig()
			}
		}
	}

	if err := shared.ApplyEnv(config); err != nil {
		return err
	}

	if cmd.Bool("rollback") {
		return r.rollback(config)
	}

	for _, path := range []string{config.Storage.Path, config.Storage.TransientPath()} {
		r.logger.Info("initializing database", "path", path)

		db, err := shared.OpenStore(path, config.Storage.MaxOpenConns, config.Storage.MaxIdleConns)
		if err != nil {
			return fmt.Errorf("failed to initialize %s: %w", path, err)
		}
		err = r.inspect(db, path, cmd.Bool("clear-session") && path == config.Storage.TransientPath())
		db.Close()
		if err != nil {
			return err
		}
	}

	r.logger.Infof("setup complete for database: %v", config.Storage.Path)
	return r.writePlain("✓ Database initialized at %s\n", config.Storage.Path)
}

// inspect reports the schema version and stored entries of an opened store, clearing it first when asked.
func (r *Runner) inspect(db *sql.DB, path string, wipe bool) error {
	versions, err := shared.AppliedMigrations(db)
	if err != nil {
		return err
	}

	store := repositories.NewSQLiteStorage(db)
	if wipe {
		if err := store.Clear(); err != nil {
			return fmt.Errorf("failed to clear %s: %w", path, err)
		}
		r.logger.Info("session store cleared", "path", path)
	}

	keys, err := store.Keys()
	if err != nil {
		return err
	}
	r.logger.Info("schema ready", "path", path, "migrations", len(versions), "keys", keys)
	return r.writePlain("%s: %d stored entries\n", path, len(keys))
}

// rollback reverts the latest migration of both stores without applying pending ones first.
func (r *Runner) rollback(config *shared.Config) error {
	for _, path := range []string{config.Storage.Path, config.Storage.TransientPath()} {
		db, err := shared.NewDatabase(path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}
		err = shared.RollbackMigration(db)
		db.Close()
		if err != nil {
			return fmt.Errorf("failed to roll back %s: %w", path, err)
		}
		r.logger.Warn("rolled back latest migration", "path", path)
		r.writePlain("✓ Rolled back latest migration of %s\n", path)
	}
	return nil
}
