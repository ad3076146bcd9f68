package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"

	_ "github.com/lib/pq"
	"github.com/shopops/backend/internal/infrastructure/config"
	"github.com/shopops/backend/internal/infrastructure/logger"
	"github.com/shopops/backend/internal/infrastructure/migration"
	"go.uber.org/zap"
)

var errUsage = errors.New("usage")

func main() {
	path := flag.String("path", "", "Path to migrations directory (default: ./migrations)")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Usage = printUsage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(2)
	}

	log := logger.New(logger.Config{Level: *logLevel, Format: "console", Output: "stdout"})
	defer func() { _ = log.Sync() }()

	dir, err := migration.ResolvePath(*path)
	if err != nil {
		log.Fatal("Cannot resolve migrations directory", zap.Error(err))
	}

	cmd, ok := commands[args[0]]
	if !ok {
		log.Error("Unknown command", zap.String("command", args[0]))
		printUsage()
		os.Exit(2)
	}

	env := &commandEnv{dir: dir, args: args[1:], log: log}
	if cmd.needsDB {
		closeDB, err := env.openMigrator()
		if err != nil {
			log.Fatal("Cannot reach database", zap.Error(err))
		}
		defer closeDB()
	}

	if err := cmd.run(env); err != nil {
		if errors.Is(err, errUsage) {
			log.Error(err.Error())
			os.Exit(2)
		}
		log.Fatal("Migration command failed", zap.String("command", args[0]), zap.Error(err))
	}
}

// openMigrator connects with the server's SHOP_DATABASE_* settings. SQLite
// deployments build their schema through auto_migrate instead.
func (e *commandEnv) openMigrator() (func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	if cfg.Database.Driver == config.DriverSQLite {
		return nil, errors.New("SQL migrations target PostgreSQL; SQLite schemas are created with auto_migrate")
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	m, err := migration.New(db, e.dir, e.log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	e.migrator = m
	e.log.Info("Connected", zap.String("host", cfg.Database.Host), zap.String("database", cfg.Database.DBName))

	return func() {
		_ = m.Close()
		_ = db.Close()
	}, nil
}

func printUsage() {
	fmt.Fprint(os.Stderr, `shopops-migrate manages the PostgreSQL schema.

Usage:
  migrate [-path dir] [-log-level level] <command> [arguments]

Commands:
`)
	for _, name := range commandOrder {
		fmt.Fprintf(os.Stderr, "  %-22s %s\n", commands[name].usage, commands[name].summary)
	}
	fmt.Fprint(os.Stderr, `
Database settings come from SHOP_DATABASE_HOST, SHOP_DATABASE_PORT,
SHOP_DATABASE_USER, SHOP_DATABASE_PASSWORD, SHOP_DATABASE_DBNAME and
SHOP_DATABASE_SSLMODE.
`)
}
