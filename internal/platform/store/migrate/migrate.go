// Package migrate applies embedded SQL sets to Postgres with golang-migrate
//
// Files follow the NNNN_name.up.sql / NNNN_name.down.sql layout. Each set
// keeps its own version table so sets advance independently
package migrate

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"

	"reviewlens/internal/platform/logger"

	gomigrate "github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5" // pgx5:// driver
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog"
)

// TablePrefix names the per set version tables
const TablePrefix = "schema_migrations_"

// ErrBadURL is returned for DSNs the driver cannot take
var ErrBadURL = errors.New("migrate: postgres url required")

// Set is a named group of migrations read from a directory of an fs.FS
type Set struct {
	Name string
	FS   fs.FS
	Dir  string
}

// Table is the version table of s
func (s Set) Table() string { return TablePrefix + s.Name }

// Status is where a set stands; Version is 0 before the first migration
type Status struct {
	Set     string
	Version uint
	Dirty   bool
}

// DatabaseURL turns a postgres:// DSN into the pgx5:// form scoped to set's table
func DatabaseURL(dsn string, set Set) (string, error) {
	u, err := url.Parse(dsn)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("%w, got %q", ErrBadURL, redact(dsn))
	}
	switch u.Scheme {
	case "postgres", "postgresql", "pgx5":
	default:
		return "", fmt.Errorf("%w, got scheme %q", ErrBadURL, u.Scheme)
	}
	u.Scheme = "pgx5"
	q := u.Query()
	q.Set("x-migrations-table", set.Table())
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func redact(dsn string) string {
	if u, err := url.Parse(dsn); err == nil && u.User != nil {
		return u.Redacted()
	}
	if i := strings.Index(dsn, "password="); i >= 0 {
		return dsn[:i] + "password=xxxxx"
	}
	return dsn
}

// Runner drives one set against one database
type Runner struct {
	set Set
	m   *gomigrate.Migrate
	log logger.Logger
}

// New opens the source and the database; Close releases both
func New(set Set, dsn string, log logger.Logger) (*Runner, error) {
	if set.Name == "" || set.FS == nil {
		return nil, errors.New("migrate: set needs a name and a filesystem")
	}
	dbURL, err := DatabaseURL(dsn, set)
	if err != nil {
		return nil, err
	}
	src, err := iofs.New(set.FS, set.Dir)
	if err != nil {
		return nil, fmt.Errorf("migrate: read %s: %w", set.Name, err)
	}
	m, err := gomigrate.NewWithSourceInstance("iofs", src, dbURL)
	if err != nil {
		return nil, fmt.Errorf("migrate: open %s: %w", set.Name, err)
	}
	l := log.With().Str("set", set.Name).Logger()
	m.Log = migrateLog{l: l}
	return &Runner{set: set, m: m, log: l}, nil
}

// Up applies every pending migration of the set
func (r *Runner) Up() (Status, error) {
	before, err := r.Status()
	if err != nil {
		return before, err
	}
	if err := r.m.Up(); err != nil && !errors.Is(err, gomigrate.ErrNoChange) {
		st, _ := r.Status()
		return st, fmt.Errorf("migrate %s: %w", r.set.Name, err)
	}
	after, err := r.Status()
	if err != nil {
		return after, err
	}
	if after.Version != before.Version {
		r.log.Info().Uint("from", before.Version).Uint("to", after.Version).Msg("migrations applied")
	}
	return after, nil
}

// Down rolls the set back by steps migrations
func (r *Runner) Down(steps int) (Status, error) {
	if steps <= 0 {
		return Status{}, fmt.Errorf("migrate: steps must be positive, got %d", steps)
	}
	if err := r.m.Steps(-steps); err != nil && !errors.Is(err, gomigrate.ErrNoChange) {
		st, _ := r.Status()
		return st, fmt.Errorf("migrate %s down: %w", r.set.Name, err)
	}
	return r.Status()
}

// Status reads the set's version table
func (r *Runner) Status() (Status, error) {
	v, dirty, err := r.m.Version()
	if errors.Is(err, gomigrate.ErrNilVersion) {
		return Status{Set: r.set.Name}, nil
	}
	if err != nil {
		return Status{Set: r.set.Name}, err
	}
	return Status{Set: r.set.Name, Version: v, Dirty: dirty}, nil
}

// Close releases the source and the database handle
func (r *Runner) Close() error {
	srcErr, dbErr := r.m.Close()
	return errors.Join(srcErr, dbErr)
}

// migrateLog forwards library output at debug level
type migrateLog struct {
	l logger.Logger
}

func (m migrateLog) Printf(format string, v ...any) {
	m.l.Debug().Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (m migrateLog) Verbose() bool { return m.l.GetLevel() <= zerolog.DebugLevel }
