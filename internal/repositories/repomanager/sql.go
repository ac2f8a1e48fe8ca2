package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/markbook/internal/migrations"
	"github.com/dmitrijs2005/markbook/internal/repositories/accounts"
	"github.com/dmitrijs2005/markbook/internal/repositories/marks"
)

// sqlDriver ties a database/sql driver to its goose and goqu dialects and to
// the migrations directory written for it.
type sqlDriver struct {
	name          string
	gooseDialect  string
	goquDialect   string
	migrationsDir string
}

var (
	sqliteDriver   = sqlDriver{name: "sqlite", gooseDialect: "sqlite3", goquDialect: "sqlite3", migrationsDir: "sqlite"}
	postgresDriver = sqlDriver{name: "pgx", gooseDialect: "pgx", goquDialect: "postgres", migrationsDir: "postgres"}
)

// SQLRepositoryManager serves accounts and marks from one database.
type SQLRepositoryManager struct {
	db       *sql.DB
	driver   sqlDriver
	accounts *accounts.SQLRepository
	marks    *marks.SQLRepository
}

// openDB is a seam for tests.
var openDB = sql.Open

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// openSQL connects, checks the connection and applies migrations.
func openSQL(ctx context.Context, d sqlDriver, dsn string) (*SQLRepositoryManager, error) {
	db, err := openDB(d.name, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d.name, err)
	}
	if d == sqliteDriver {
		// one writer at a time; also keeps shared in-memory databases alive
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", d.name, err)
	}

	m := newSQLRepositoryManager(db, d)
	if err := m.RunMigrations(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return m, nil
}

func newSQLRepositoryManager(db *sql.DB, d sqlDriver) *SQLRepositoryManager {
	return &SQLRepositoryManager{
		db:       db,
		driver:   d,
		accounts: accounts.NewSQLRepository(db, d.goquDialect),
		marks:    marks.NewSQLRepository(db, d.goquDialect),
	}
}

// RunMigrations sets up goose with the embedded migrations and applies the
// ones written for this driver.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(m.driver.gooseDialect); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, m.db, m.driver.migrationsDir); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (m *SQLRepositoryManager) Accounts() accounts.Repository { return m.accounts }

func (m *SQLRepositoryManager) Marks() marks.Repository { return m.marks }

func (m *SQLRepositoryManager) Close() error { return m.db.Close() }
