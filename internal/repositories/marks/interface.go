package marks

import (
	"context"

	"github.com/dmitrijs2005/markbook/internal/models"
)

type Repository interface {
	// Put replaces the snapshot of snap.Email.
	Put(ctx context.Context, snap models.Snapshot) error
	// Get returns the stored snapshot or common.ErrNotFound.
	Get(ctx context.Context, email string) (*models.Snapshot, error)
}
