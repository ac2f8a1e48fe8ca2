package accounts

import (
	"context"

	"github.com/dmitrijs2005/markbook/internal/models"
)

type Repository interface {
	// Load returns every account keyed by email.
	Load(ctx context.Context) (map[string]models.Account, error)
	// Save replaces the whole set of accounts.
	Save(ctx context.Context, accounts map[string]models.Account) error
	// Create adds one account or fails with common.ErrDuplicateAccount.
	Create(ctx context.Context, account models.Account) error
	// Get returns one account or common.ErrAccountNotFound.
	Get(ctx context.Context, email string) (*models.Account, error)
}
