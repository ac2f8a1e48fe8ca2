package accounts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/markbook/internal/blob"
	"github.com/dmitrijs2005/markbook/internal/common"
	"github.com/dmitrijs2005/markbook/internal/models"
)

// DocumentKey is the blob key of the accounts document.
const DocumentKey = "accounts.json"

// accountDoc is the persisted shape of one account. Byte slices are encoded
// as base64 by encoding/json.
type accountDoc struct {
	DisplayName        string `json:"displayName"`
	Phone              string `json:"phone"`
	DateOfBirth        string `json:"dateOfBirth"`
	CredentialSalt     []byte `json:"credentialSalt"`
	CredentialVerifier []byte `json:"credentialVerifier"`
}

type DocumentRepository struct {
	store blob.Store
	key   string
}

func NewDocumentRepository(store blob.Store) *DocumentRepository {
	return &DocumentRepository{store: store, key: DocumentKey}
}

func (r *DocumentRepository) Load(ctx context.Context) (map[string]models.Account, error) {
	data, err := r.store.Get(ctx, r.key)
	if err != nil {
		if errors.Is(err, blob.ErrNotExist) {
			return map[string]models.Account{}, nil
		}
		return nil, common.StorageError("read accounts", err)
	}

	if len(data) == 0 {
		return map[string]models.Account{}, nil
	}

	var docs map[string]accountDoc
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, common.StorageError("decode accounts", err)
	}

	out := make(map[string]models.Account, len(docs))
	for email, d := range docs {
		dob, err := models.ParseDate(d.DateOfBirth)
		if err != nil {
			return nil, common.StorageError("decode accounts", fmt.Errorf("account %q: %w", email, err))
		}
		out[email] = models.Account{
			Email:       email,
			DisplayName: d.DisplayName,
			Phone:       d.Phone,
			DateOfBirth: dob,
			Credential: models.Credential{
				Salt:     d.CredentialSalt,
				Verifier: d.CredentialVerifier,
			},
		}
	}
	return out, nil
}

func (r *DocumentRepository) Save(ctx context.Context, accounts map[string]models.Account) error {
	docs := make(map[string]accountDoc, len(accounts))
	for email, a := range accounts {
		docs[email] = accountDoc{
			DisplayName:        a.DisplayName,
			Phone:              a.Phone,
			DateOfBirth:        a.DateOfBirth.Format(models.DateLayout),
			CredentialSalt:     a.Credential.Salt,
			CredentialVerifier: a.Credential.Verifier,
		}
	}

	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return common.StorageError("encode accounts", err)
	}
	return common.StorageError("write accounts", r.store.Put(ctx, r.key, data))
}

// Create adds the account to the document and provisions its namespace. A
// failed write removes the namespace again.
func (r *DocumentRepository) Create(ctx context.Context, account models.Account) error {
	all, err := r.Load(ctx)
	if err != nil {
		return err
	}
	if _, ok := all[account.Email]; ok {
		return common.ErrDuplicateAccount
	}

	if err := r.store.MakeNamespace(ctx, account.Email); err != nil {
		return common.StorageError("create namespace", err)
	}

	all[account.Email] = account
	if err := r.Save(ctx, all); err != nil {
		// The account was not recorded, so its namespace must not outlive it.
		if rmErr := r.store.RemoveNamespace(ctx, account.Email); rmErr != nil {
			return errors.Join(err, common.StorageError("remove namespace", rmErr))
		}
		return err
	}
	return nil
}

func (r *DocumentRepository) Get(ctx context.Context, email string) (*models.Account, error) {
	all, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}
	a, ok := all[email]
	if !ok {
		return nil, common.ErrAccountNotFound
	}
	return &a, nil
}
