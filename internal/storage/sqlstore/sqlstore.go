// Package sqlstore provides a database/sql implementation of the
// storage.Store interface. SQLite is the default backend; PostgreSQL is
// available for shared deployments.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver registered as "pgx"
	_ "modernc.org/sqlite"             // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/moneysplits/internal/storage"
)

// Dialect names the SQL flavour a Store talks to.
type Dialect string

// Supported dialects.
const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store implements storage.Store on top of database/sql.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// New creates a SQLite-backed Store at dbPath.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dsn := "file:" + dbPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps pragmas applied and serialises writers.
	db.SetMaxOpenConns(1)

	if err := runMigrations(context.Background(), db, DialectSQLite); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Store{db: db, dialect: DialectSQLite}, nil
}

// NewPostgres creates a PostgreSQL-backed Store from a pgx connection string.
func NewPostgres(ctx context.Context, dsn string, maxConns int) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if maxConns > 0 {
		db.SetMaxOpenConns(maxConns)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := runMigrations(ctx, db, DialectPostgres); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Store{db: db, dialect: DialectPostgres}, nil
}

// Dialect reports which backend the store is connected to.
func (s *Store) Dialect() Dialect {
	return s.dialect
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// q rewrites ? placeholders into the dialect's bind syntax.
func (s *Store) q(query string) string {
	if s.dialect != DialectPostgres {
		return query
	}
	return rebind(query)
}

func rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// withTx runs fn inside a transaction, committing when fn returns nil.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// checkAffected maps a zero-row update or delete to notFound.
func checkAffected(res sql.Result, notFound error, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", notFound, id)
	}
	return nil
}
