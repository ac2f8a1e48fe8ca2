package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/markbook/internal/common"
	"github.com/dmitrijs2005/markbook/internal/cryptox"
	"github.com/dmitrijs2005/markbook/internal/logging"
	"github.com/dmitrijs2005/markbook/internal/models"
	"github.com/dmitrijs2005/markbook/internal/repositories/accounts"
)

// Session is the slot the services sign principals into and read them from.
type Session interface {
	SignIn(account models.Account) string
	RequireAuthenticated() (string, error)
}

// RegisterRequest carries the registration form. Secret is wiped after use.
type RegisterRequest struct {
	Email       string
	DisplayName string
	Phone       string
	DateOfBirth time.Time
	Secret      []byte
}

// AccountService defines account operations.
//
// Contract:
//   - Register: create an account, or fail with ErrInvalidCredential,
//     ErrInvalidDate or ErrDuplicateAccount.
//   - Authenticate: return the account when the secret matches exactly, or
//     fail with ErrAccountNotFound or ErrInvalidCredential.
//   - SignIn: Authenticate and put the account into the session.
type AccountService interface {
	Register(ctx context.Context, req RegisterRequest) (*models.Account, error)
	Authenticate(ctx context.Context, email string, secret []byte) (*models.Account, error)
	SignIn(ctx context.Context, email string, secret []byte) (*models.Account, error)
}

type accountService struct {
	repo    accounts.Repository
	session Session
	log     logging.Logger
}

func NewAccountService(repo accounts.Repository, session Session, log logging.Logger) AccountService {
	return &accountService{repo: repo, session: session, log: log.With("service", "accounts")}
}

func (s *accountService) Register(ctx context.Context, req RegisterRequest) (*models.Account, error) {
	defer common.WipeByteArray(req.Secret)

	if err := validateRegistration(req); err != nil {
		logFailure(ctx, s.log, "registration rejected", err, "email", req.Email)
		return nil, err
	}

	account := models.Account{
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Phone:       req.Phone,
		DateOfBirth: models.DateOnly(req.DateOfBirth),
		Credential:  cryptox.NewCredential(req.Secret),
	}

	if err := s.repo.Create(ctx, account); err != nil {
		logFailure(ctx, s.log, "registration failed", err, "email", req.Email)
		return nil, err
	}

	s.log.Info(ctx, "account registered", "email", account.Email)
	return &account, nil
}

func validateRegistration(req RegisterRequest) error {
	if err := models.ValidateEmail(req.Email); err != nil {
		return err
	}
	if len(req.Secret) == 0 {
		return common.ErrInvalidCredential
	}
	return models.ValidateDateOfBirth(req.DateOfBirth)
}

func (s *accountService) Authenticate(ctx context.Context, email string, secret []byte) (*models.Account, error) {
	account, err := s.repo.Get(ctx, email)
	if err != nil {
		logFailure(ctx, s.log, "authentication failed", err, "email", email)
		return nil, err
	}
	if !cryptox.Verify(account.Credential, secret) {
		logFailure(ctx, s.log, "authentication failed", common.ErrInvalidCredential, "email", email)
		return nil, common.ErrInvalidCredential
	}
	return account, nil
}

func (s *accountService) SignIn(ctx context.Context, email string, secret []byte) (*models.Account, error) {
	account, err := s.Authenticate(ctx, email, secret)
	if err != nil {
		return nil, err
	}
	id := s.session.SignIn(*account)
	s.log.Info(ctx, "signed in", "email", account.Email, "session", id)
	return account, nil
}
