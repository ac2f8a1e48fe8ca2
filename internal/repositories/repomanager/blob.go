package repomanager

import (
	"github.com/dmitrijs2005/markbook/internal/blob"
	"github.com/dmitrijs2005/markbook/internal/repositories/accounts"
	"github.com/dmitrijs2005/markbook/internal/repositories/marks"
)

// BlobRepositoryManager serves the document formats from a blob.Store.
type BlobRepositoryManager struct {
	accounts *accounts.DocumentRepository
	marks    *marks.CSVRepository
}

func NewBlobRepositoryManager(store blob.Store) *BlobRepositoryManager {
	return &BlobRepositoryManager{
		accounts: accounts.NewDocumentRepository(store),
		marks:    marks.NewCSVRepository(store),
	}
}

func (m *BlobRepositoryManager) Accounts() accounts.Repository { return m.accounts }

func (m *BlobRepositoryManager) Marks() marks.Repository { return m.marks }

func (m *BlobRepositoryManager) Close() error { return nil }
