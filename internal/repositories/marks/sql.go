package marks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"

	"github.com/dmitrijs2005/markbook/internal/common"
	"github.com/dmitrijs2005/markbook/internal/dbx"
	"github.com/dmitrijs2005/markbook/internal/models"
	"github.com/dmitrijs2005/markbook/internal/repositories/accounts"
)

const table = "marks"

// column maps a subject to its marks column.
func column(s models.Subject) string {
	return strings.ToLower(string(s))
}

type SQLRepository struct {
	db      *sql.DB
	dialect goqu.DialectWrapper
}

func NewSQLRepository(db *sql.DB, dialect string) *SQLRepository {
	return &SQLRepository{db: db, dialect: goqu.Dialect(dialect)}
}

// Put replaces the row of snap.Email in one transaction.
func (r *SQLRepository) Put(ctx context.Context, snap models.Snapshot) error {
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		ok, err := accounts.AccountExists(ctx, tx, r.dialect, snap.Email)
		if err != nil {
			return err
		}
		if !ok {
			return common.ErrAccountNotFound
		}

		if _, err := dbx.Exec(ctx, tx, r.dialect.Delete(table).Where(goqu.C("email").Eq(snap.Email)).Prepared(true)); err != nil {
			return fmt.Errorf("delete marks: %w", err)
		}

		rec := goqu.Record{"email": snap.Email}
		for _, s := range models.Subjects() {
			rec[column(s)] = snap.Scores[s]
		}
		if _, err := dbx.Exec(ctx, tx, r.dialect.Insert(table).Rows(rec).Prepared(true)); err != nil {
			return fmt.Errorf("insert marks: %w", err)
		}
		return nil
	})
	if errors.Is(err, common.ErrAccountNotFound) {
		return err
	}
	return common.StorageError("put marks", err)
}

func (r *SQLRepository) Get(ctx context.Context, email string) (*models.Snapshot, error) {
	subjects := models.Subjects()
	cols := make([]any, len(subjects))
	for i, s := range subjects {
		cols[i] = column(s)
	}

	row, err := dbx.QueryRow(ctx, r.db, r.dialect.From(table).Select(cols...).Where(goqu.C("email").Eq(email)).Prepared(true))
	if err != nil {
		return nil, common.StorageError("select marks", err)
	}

	values := make([]int, len(subjects))
	dest := make([]any, len(subjects))
	for i := range values {
		dest[i] = &values[i]
	}
	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, common.StorageError("select marks", err)
	}

	scores, err := models.ScoresFromValues(values)
	if err != nil {
		return nil, common.StorageError("decode marks", err)
	}
	return &models.Snapshot{Email: email, Scores: scores}, nil
}
