package sqlstore

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

// goose keeps its dialect and filesystem in package globals.
var migrateMu sync.Mutex

// gooseLogger routes goose output through slog.
type gooseLogger struct{}

func (gooseLogger) Printf(format string, v ...any) {
	slog.Debug(fmt.Sprintf(format, v...), "component", "migrations")
}

func (gooseLogger) Fatalf(format string, v ...any) {
	slog.Error(fmt.Sprintf(format, v...), "component", "migrations")
}

// runMigrations applies every pending migration for the dialect.
func runMigrations(ctx context.Context, db *sql.DB, dialect Dialect) error {
	migrateMu.Lock()
	defer migrateMu.Unlock()

	gooseDialect := "sqlite3"
	if dialect == DialectPostgres {
		gooseDialect = "postgres"
	}

	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(gooseLogger{})
	if err := goose.SetDialect(gooseDialect); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations/"+string(dialect)); err != nil {
		return err
	}
	return nil
}
