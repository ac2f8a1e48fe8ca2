// Package repomanager opens the configured storage backend and vends the
// account and marks repositories bound to it.
//
// Backends:
//
//	fs        JSON document and CSV files under a local directory
//	s3        the same objects in an S3-compatible bucket
//	sqlite    accounts and marks tables in a SQLite database file
//	postgres  the same tables in PostgreSQL
//
// SQL backends run the embedded goose migrations when opened.
package repomanager

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/markbook/internal/blob"
	"github.com/dmitrijs2005/markbook/internal/filex"
	"github.com/dmitrijs2005/markbook/internal/repositories/accounts"
	"github.com/dmitrijs2005/markbook/internal/repositories/marks"
)

const (
	BackendFS       = "fs"
	BackendS3       = "s3"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// SQLiteFileName is the database file used when the sqlite backend has no DSN.
const SQLiteFileName = "markbook.db"

type RepositoryManager interface {
	Accounts() accounts.Repository
	Marks() marks.Repository
	Close() error
}

type Options struct {
	Backend     string
	DataDir     string
	DatabaseDSN string
	S3          blob.S3Options
}

// newS3Store is a seam for tests.
var newS3Store = func(ctx context.Context, opts blob.S3Options) (blob.Store, error) {
	return blob.NewS3Store(ctx, opts)
}

// New opens the backend named by opts.Backend.
func New(ctx context.Context, opts Options) (RepositoryManager, error) {
	switch opts.Backend {
	case BackendFS, "":
		st, err := blob.NewFSStore(opts.DataDir)
		if err != nil {
			return nil, fmt.Errorf("open data dir: %w", err)
		}
		return NewBlobRepositoryManager(st), nil

	case BackendS3:
		st, err := newS3Store(ctx, opts.S3)
		if err != nil {
			return nil, fmt.Errorf("open s3 store: %w", err)
		}
		return NewBlobRepositoryManager(st), nil

	case BackendSQLite:
		dsn := opts.DatabaseDSN
		if dsn == "" {
			if err := filex.EnsureDir(opts.DataDir); err != nil {
				return nil, fmt.Errorf("open data dir: %w", err)
			}
			dsn = filepath.Join(opts.DataDir, SQLiteFileName)
		}
		return sqlManager(ctx, sqliteDriver, dsn)

	case BackendPostgres:
		if opts.DatabaseDSN == "" {
			return nil, fmt.Errorf("postgres backend needs a database dsn")
		}
		return sqlManager(ctx, postgresDriver, opts.DatabaseDSN)

	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}

func sqlManager(ctx context.Context, d sqlDriver, dsn string) (RepositoryManager, error) {
	m, err := openSQL(ctx, d, dsn)
	if err != nil {
		return nil, err
	}
	return m, nil
}
