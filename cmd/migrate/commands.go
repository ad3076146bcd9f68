package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopops/backend/internal/infrastructure/migration"
	"go.uber.org/zap"
)

type schemaMigrator interface {
	Up() error
	Down() error
	Steps(n int) error
	Version() (uint, bool, error)
	Force(version int) error
}

type commandEnv struct {
	dir      string
	args     []string
	log      *zap.Logger
	migrator schemaMigrator
	out      io.Writer
}

func (e *commandEnv) stdout() io.Writer {
	if e.out == nil {
		return os.Stdout
	}
	return e.out
}

type command struct {
	usage   string
	summary string
	needsDB bool
	run     func(*commandEnv) error
}

var commandOrder = []string{"up", "down", "step", "version", "status", "force", "create", "list"}

var commands = map[string]command{
	"up": {"up", "Apply all pending migrations", true, func(e *commandEnv) error {
		return e.migrator.Up()
	}},
	"down": {"down", "Roll back every migration", true, func(e *commandEnv) error {
		return e.migrator.Down()
	}},
	"step": {"step <n>", "Apply n migrations, negative rolls back", true, func(e *commandEnv) error {
		n, err := intArg(e.args, "step count")
		if err != nil {
			return err
		}
		return e.migrator.Steps(n)
	}},
	"version": {"version", "Show the applied schema version", true, runVersion},
	"status":  {"status", "List migrations and mark the applied ones", true, runStatus},
	"force": {"force <version>", "Mark a version as applied without running it", true, func(e *commandEnv) error {
		v, err := intArg(e.args, "version")
		if err != nil {
			return err
		}
		return e.migrator.Force(v)
	}},
	"create": {"create <name> [desc]", "Write the next migration file pair", false, runCreate},
	"list":   {"list", "List migration files", false, runList},
}

func intArg(args []string, what string) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("%w: %s required", errUsage, what)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", errUsage, what, args[0])
	}
	return n, nil
}

func runVersion(e *commandEnv) error {
	version, dirty, err := e.migrator.Version()
	if err != nil {
		return err
	}
	if version == 0 {
		e.log.Info("No migrations applied")
		return nil
	}
	e.log.Info("Schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}

// runStatus prints one line per migration file: [x] applied, [ ] pending,
// [!] the dirty version a failed run left behind.
func runStatus(e *commandEnv) error {
	files, err := migration.ListMigrations(e.dir)
	if err != nil {
		return err
	}
	version, dirty, err := e.migrator.Version()
	if err != nil {
		return err
	}

	for _, name := range files {
		mark := " "
		if v, ok := fileVersion(name); ok && v <= version {
			mark = "x"
			if dirty && v == version {
				mark = "!"
			}
		}
		fmt.Fprintf(e.stdout(), "[%s] %s\n", mark, name)
	}
	return nil
}

func fileVersion(name string) (uint, bool) {
	prefix, _, found := strings.Cut(name, "_")
	if !found {
		return 0, false
	}
	v, err := strconv.ParseUint(prefix, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(v), true
}

func runCreate(e *commandEnv) error {
	if len(e.args) == 0 {
		return fmt.Errorf("%w: migration name required", errUsage)
	}
	description := ""
	if len(e.args) > 1 {
		description = strings.Join(e.args[1:], " ")
	}
	mf, err := migration.CreateMigration(e.dir, e.args[0], description)
	if err != nil {
		return err
	}
	e.log.Info("Migration created",
		zap.String("version", mf.Version),
		zap.String("up", mf.UpPath),
		zap.String("down", mf.DownPath))
	return nil
}

func runList(e *commandEnv) error {
	files, err := migration.ListMigrations(e.dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		e.log.Info("No migrations found", zap.String("dir", e.dir))
		return nil
	}
	for _, name := range files {
		fmt.Fprintln(e.stdout(), name)
	}
	return nil
}
