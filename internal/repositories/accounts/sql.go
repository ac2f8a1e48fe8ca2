package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"

	"github.com/dmitrijs2005/markbook/internal/common"
	"github.com/dmitrijs2005/markbook/internal/dbx"
	"github.com/dmitrijs2005/markbook/internal/models"
)

const table = "accounts"

var columns = []any{"email", "display_name", "phone", "date_of_birth", "credential_salt", "credential_verifier"}

// SQLRepository stores accounts as rows of the accounts table. The goqu
// dialect name selects placeholder and quoting style ("postgres", "sqlite3").
type SQLRepository struct {
	db      *sql.DB
	dialect goqu.DialectWrapper
}

func NewSQLRepository(db *sql.DB, dialect string) *SQLRepository {
	return &SQLRepository{db: db, dialect: goqu.Dialect(dialect)}
}

func (r *SQLRepository) Load(ctx context.Context) (map[string]models.Account, error) {
	rows, err := dbx.Query(ctx, r.db, r.dialect.From(table).Select(columns...).Order(goqu.C("email").Asc()).Prepared(true))
	if err != nil {
		return nil, common.StorageError("select accounts", err)
	}
	defer rows.Close()

	out := map[string]models.Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, common.StorageError("scan account", err)
		}
		out[a.Email] = *a
	}
	if err := rows.Err(); err != nil {
		return nil, common.StorageError("select accounts", err)
	}
	return out, nil
}

// Save makes the table hold exactly the given accounts. Accounts that are
// dropped lose their marks row too.
func (r *SQLRepository) Save(ctx context.Context, accounts map[string]models.Account) error {
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		keep := make([]any, 0, len(accounts))
		for email := range accounts {
			keep = append(keep, email)
		}

		marksDel := r.dialect.Delete("marks")
		accDel := r.dialect.Delete(table)
		if len(keep) > 0 {
			marksDel = marksDel.Where(goqu.C("email").NotIn(keep...))
			accDel = accDel.Where(goqu.C("email").NotIn(keep...))
		}
		if _, err := dbx.Exec(ctx, tx, marksDel.Prepared(true)); err != nil {
			return fmt.Errorf("delete marks: %w", err)
		}
		if _, err := dbx.Exec(ctx, tx, accDel.Prepared(true)); err != nil {
			return fmt.Errorf("delete accounts: %w", err)
		}

		for email, a := range accounts {
			a.Email = email
			if err := r.upsert(ctx, tx, a); err != nil {
				return err
			}
		}
		return nil
	})
	return common.StorageError("save accounts", err)
}

func (r *SQLRepository) upsert(ctx context.Context, tx dbx.DBTX, a models.Account) error {
	res, err := dbx.Exec(ctx, tx, r.dialect.Update(table).
		Set(goqu.Record{
			"display_name":        a.DisplayName,
			"phone":               a.Phone,
			"date_of_birth":       a.DateOfBirth.Format(models.DateLayout),
			"credential_salt":     a.Credential.Salt,
			"credential_verifier": a.Credential.Verifier,
		}).
		Where(goqu.C("email").Eq(a.Email)).
		Prepared(true))
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	if n > 0 {
		return nil
	}
	return r.insert(ctx, tx, a)
}

func (r *SQLRepository) insert(ctx context.Context, tx dbx.DBTX, a models.Account) error {
	_, err := dbx.Exec(ctx, tx, r.dialect.Insert(table).Rows(goqu.Record{
		"email":               a.Email,
		"display_name":        a.DisplayName,
		"phone":               a.Phone,
		"date_of_birth":       a.DateOfBirth.Format(models.DateLayout),
		"credential_salt":     a.Credential.Salt,
		"credential_verifier": a.Credential.Verifier,
	}).Prepared(true))
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// Create inserts the account in a transaction after checking the email is free.
func (r *SQLRepository) Create(ctx context.Context, account models.Account) error {
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		exists, err := AccountExists(ctx, tx, r.dialect, account.Email)
		if err != nil {
			return err
		}
		if exists {
			return common.ErrDuplicateAccount
		}
		return r.insert(ctx, tx, account)
	})
	if errors.Is(err, common.ErrDuplicateAccount) {
		return err
	}
	return common.StorageError("create account", err)
}

func (r *SQLRepository) Get(ctx context.Context, email string) (*models.Account, error) {
	row, err := dbx.QueryRow(ctx, r.db, r.dialect.From(table).Select(columns...).Where(goqu.C("email").Eq(email)).Prepared(true))
	if err != nil {
		return nil, common.StorageError("select account", err)
	}
	a, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrAccountNotFound
		}
		return nil, common.StorageError("select account", err)
	}
	return a, nil
}

// AccountExists reports whether an accounts row with the email exists. The
// marks repository uses it inside its own transaction.
func AccountExists(ctx context.Context, db dbx.DBTX, dialect goqu.DialectWrapper, email string) (bool, error) {
	row, err := dbx.QueryRow(ctx, db, dialect.From(table).Select(goqu.COUNT("*")).Where(goqu.C("email").Eq(email)).Prepared(true))
	if err != nil {
		return false, err
	}
	var n int
	if err := row.Scan(&n); err != nil {
		return false, fmt.Errorf("count accounts: %w", err)
	}
	return n > 0, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(s scanner) (*models.Account, error) {
	var (
		a   models.Account
		dob string
	)
	if err := s.Scan(&a.Email, &a.DisplayName, &a.Phone, &dob, &a.Credential.Salt, &a.Credential.Verifier); err != nil {
		return nil, err
	}
	d, err := parseColumnDate(dob)
	if err != nil {
		return nil, err
	}
	a.DateOfBirth = d
	return &a, nil
}

// parseColumnDate accepts both a bare date and a timestamp rendering of a
// DATE column, keeping the calendar date.
func parseColumnDate(s string) (time.Time, error) {
	if len(s) < len(models.DateLayout) {
		return time.Time{}, fmt.Errorf("bad date %q", s)
	}
	return models.ParseDate(s[:len(models.DateLayout)])
}
