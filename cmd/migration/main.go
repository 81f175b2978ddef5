package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	"github.com/riskibarqy/prediction-pool/internal/config"
	"github.com/riskibarqy/prediction-pool/internal/platform/logging"
)

// command runs one migrate operation. args excludes the command name.
type command struct {
	usage string
	run   func(m *migrate.Migrate, logger *logging.Logger, args []string) error
}

var commands = map[string]command{
	"up": {
		usage: "up",
		run: func(m *migrate.Migrate, logger *logging.Logger, _ []string) error {
			if err := ignoreNoChange(m.Up(), logger); err != nil {
				return err
			}
			logger.Info("migrations applied")
			return nil
		},
	},
	"down": {
		usage: "down [steps=1]",
		run: func(m *migrate.Migrate, logger *logging.Logger, args []string) error {
			steps := 1
			if len(args) > 0 {
				n, err := strconv.Atoi(strings.TrimSpace(args[0]))
				if err != nil || n <= 0 {
					return fmt.Errorf("down steps must be a positive integer, got %q", args[0])
				}
				steps = n
			}
			if err := ignoreNoChange(m.Steps(-steps), logger); err != nil {
				return err
			}
			logger.Info("migrations rolled back", "steps", steps)
			return nil
		},
	},
	"version": {
		usage: "version",
		run: func(m *migrate.Migrate, _ *logging.Logger, _ []string) error {
			version, dirty, err := m.Version()
			switch {
			case errors.Is(err, migrate.ErrNilVersion):
				fmt.Println("version: none")
				fmt.Println("dirty: false")
				return nil
			case err != nil:
				return fmt.Errorf("read version: %w", err)
			}
			fmt.Printf("version: %d\ndirty: %t\n", version, dirty)
			return nil
		},
	},
	"force": {
		usage: "force <version>",
		run: func(m *migrate.Migrate, logger *logging.Logger, args []string) error {
			version, err := versionArg(args)
			if err != nil {
				return err
			}
			if version > uint64(^uint(0)>>1) {
				return fmt.Errorf("version %d is too large", version)
			}
			if err := m.Force(int(version)); err != nil {
				return fmt.Errorf("force version %d: %w", version, err)
			}
			logger.Info("forced version", "version", version)
			return nil
		},
	},
	"goto": {
		usage: "goto <version>",
		run: func(m *migrate.Migrate, logger *logging.Logger, args []string) error {
			version, err := versionArg(args)
			if err != nil {
				return err
			}
			if err := ignoreNoChange(m.Migrate(uint(version)), logger); err != nil {
				return err
			}
			logger.Info("migrated", "version", version)
			return nil
		},
	},
}

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}
	cmd, ok := commands[strings.ToLower(strings.TrimSpace(os.Args[1]))]
	if !ok {
		printUsage()
		os.Exit(2)
	}

	cfg, err := config.LoadMigration()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := logging.New(logging.Options{Level: cfg.LogLevel, ServiceName: "prediction-pool-migration"})

	if err := run(cfg, cmd, os.Args[2:], logger); err != nil {
		logger.Error("migration command failed", "command", os.Args[1], "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

func run(cfg config.Migration, cmd command, args []string, logger *logging.Logger) error {
	source := "file://" + filepath.ToSlash(cfg.MigrationsDir)
	m, err := migrate.New(source, cfg.DBURL)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			logger.Warn("close migration source failed", "error", srcErr)
		}
		if dbErr != nil {
			logger.Warn("close migration db failed", "error", dbErr)
		}
	}()

	logger.Info("running migration command", "source", source, "usage", cmd.usage)
	return cmd.run(m, logger, args)
}

func versionArg(args []string) (uint64, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("a version argument is required")
	}
	version, err := strconv.ParseUint(strings.TrimSpace(args[0]), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid version %q: %w", args[0], err)
	}
	return version, nil
}

func ignoreNoChange(err error, logger *logging.Logger) error {
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migration changes")
		return nil
	}
	return err
}

func printUsage() {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "usage: %s <command> [args]\n\ncommands:\n", name)
	for _, key := range []string{"up", "down", "version", "force", "goto"} {
		fmt.Fprintf(os.Stderr, "  %s %s\n", name, commands[key].usage)
	}
	fmt.Fprintf(os.Stderr, "\nexample: %s goto 1771776240\n", name)
}
