// Package sqlcore implements the shared SQL registry store used by the
// sqlite, postgres and mysql driver packages.
package sqlcore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/goforj/flavors/flavorcore"
)

const (
	defaultTable  = "flavor_entries"
	defaultPrefix = "flavors"
)

// Config configures a database/sql-backed registry store. The driver
// named by DriverName must already be registered (the wrapper packages
// blank-import the right one).
type Config struct {
	flavorcore.BaseConfig
	DriverName string
	DSN        string
	Table      string
}

type store struct {
	db         *sql.DB
	table      string
	driverName string
	prefix     string
	getStmt    *sql.Stmt
	insertStmt *sql.Stmt
	countStmt  *sql.Stmt
	namesStmt  *sql.Stmt
}

var sqlIdentPartRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// New builds a SQL-backed flavorcore.Store and ensures its schema.
func New(cfg Config) (flavorcore.Store, error) {
	if cfg.DriverName == "" || cfg.DSN == "" {
		return nil, errors.New("sql registry requires driver name and dsn")
	}
	db, err := sql.Open(cfg.DriverName, cfg.DSN)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	table := cfg.Table
	if table == "" {
		table = defaultTable
	}
	if err := validateTableName(table); err != nil {
		return nil, err
	}
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = defaultPrefix
	}
	s := &store{
		db:         db,
		table:      table,
		driverName: cfg.DriverName,
		prefix:     prefix,
	}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	if err := s.prepareStatements(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *store) Driver() flavorcore.Driver { return flavorcore.DriverSQL }

func (s *store) ensureSchema() error {
	var stmt string
	switch s.driverName {
	case "postgres", "pgx":
		stmt = fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			p TEXT NOT NULL,
			n TEXT NOT NULL,
			v BYTEA NOT NULL,
			PRIMARY KEY (p, n)
		);`, s.table)
	case "mysql":
		stmt = fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			p VARBINARY(128) NOT NULL,
			n VARBINARY(255) NOT NULL,
			v LONGBLOB NOT NULL,
			PRIMARY KEY (p, n)
		) ENGINE=InnoDB;`, s.table)
	default: // sqlite
		stmt = fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			p TEXT NOT NULL,
			n TEXT NOT NULL,
			v BLOB NOT NULL,
			PRIMARY KEY (p, n)
		);`, s.table)
	}
	_, err := s.db.Exec(stmt)
	return err
}

func (s *store) Get(ctx context.Context, name string) ([]byte, bool, error) {
	var v []byte
	err := s.getStmt.QueryRowContext(ctx, s.prefix, name).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return cloneBytes(v), true, nil
}

func (s *store) Add(ctx context.Context, name string, body []byte) (bool, error) {
	_, err := s.insertStmt.ExecContext(ctx, s.prefix, name, body)
	if err != nil {
		if isDuplicateErr(err, s.driverName) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.countStmt.QueryRowContext(ctx, s.prefix).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *store) Names(ctx context.Context) ([]string, error) {
	rows, err := s.namesStmt.QueryContext(ctx, s.prefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *store) getSQL() string {
	return fmt.Sprintf("SELECT v FROM %s WHERE p = %s AND n = %s", s.table, s.ph(1), s.ph(2))
}

func (s *store) insertSQL() string {
	return fmt.Sprintf("INSERT INTO %s (p, n, v) VALUES (%s, %s, %s)", s.table, s.ph(1), s.ph(2), s.ph(3))
}

func (s *store) countSQL() string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE p = %s", s.table, s.ph(1))
}

func (s *store) namesSQL() string {
	return fmt.Sprintf("SELECT n FROM %s WHERE p = %s", s.table, s.ph(1))
}

func (s *store) prepareStatements() error {
	var err error
	if s.getStmt, err = s.db.Prepare(s.getSQL()); err != nil {
		return err
	}
	if s.insertStmt, err = s.db.Prepare(s.insertSQL()); err != nil {
		return err
	}
	if s.countStmt, err = s.db.Prepare(s.countSQL()); err != nil {
		return err
	}
	if s.namesStmt, err = s.db.Prepare(s.namesSQL()); err != nil {
		return err
	}
	return nil
}

func (s *store) ph(i int) string {
	if s.driverName == "postgres" || s.driverName == "pgx" {
		return fmt.Sprintf("$%d", i)
	}
	return "?"
}

func isDuplicateErr(err error, driver string) bool {
	msg := err.Error()
	switch driver {
	case "postgres", "pgx":
		return strings.Contains(msg, "duplicate key value")
	case "mysql":
		return strings.Contains(msg, "Duplicate entry")
	default:
		return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "unique constraint")
	}
}

func validateTableName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("sql table name is required")
	}
	for _, part := range strings.Split(name, ".") {
		if !sqlIdentPartRE.MatchString(part) {
			return fmt.Errorf("invalid sql table name %q", name)
		}
	}
	return nil
}

func cloneBytes(value []byte) []byte {
	if value == nil {
		return nil
	}
	clone := make([]byte, len(value))
	copy(clone, value)
	return clone
}
