package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/markbook/internal/blob"
	"github.com/dmitrijs2005/markbook/internal/common"
	"github.com/dmitrijs2005/markbook/internal/config"
	"github.com/dmitrijs2005/markbook/internal/logging"
	"github.com/dmitrijs2005/markbook/internal/repositories/repomanager"
	"github.com/dmitrijs2005/markbook/internal/services"
	"github.com/dmitrijs2005/markbook/internal/session"
)

type App struct {
	accounts services.AccountService
	marks    services.MarksService
	reports  services.ReportService
	session  *session.Session
	repos    repomanager.RepositoryManager
	log      logging.Logger
	reader   *bufio.Reader
	out      io.Writer
}

// storageOptions maps the configuration onto repository manager options.
func storageOptions(c *config.Config) repomanager.Options {
	return repomanager.Options{
		Backend:     c.StorageBackend,
		DataDir:     c.DataDir,
		DatabaseDSN: c.DatabaseDSN,
		S3: blob.S3Options{
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
			AccessKey:    c.S3AccessKey,
			SecretKey:    c.S3SecretKey,
			Prefix:       c.S3Prefix,
		},
	}
}

// NewApp opens the configured storage backend and builds the services on top
// of it. Close releases the backend.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	repos, err := repomanager.New(ctx, storageOptions(c))
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "storage opened", "backend", c.StorageBackend)
	return newApp(repos, log, in, out), nil
}

func newApp(repos repomanager.RepositoryManager, log logging.Logger, in io.Reader, out io.Writer) *App {
	sess := session.New()
	ms := services.NewMarksService(repos.Marks(), sess, log)
	return &App{
		accounts: services.NewAccountService(repos.Accounts(), sess, log),
		marks:    ms,
		reports:  services.NewReportService(ms, sess, log),
		session:  sess,
		repos:    repos,
		log:      log,
		reader:   bufio.NewReader(in),
		out:      out,
	}
}

// Run greets the user and serves commands until exit or end of input.
func (a *App) Run(ctx context.Context) {
	a.println("Welcome to markbook (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}

func (a *App) Close() error {
	return a.repos.Close()
}

func (a *App) isLoggedIn() bool {
	_, ok := a.session.Current()
	return ok
}

func (a *App) getStatus() string {
	if email, ok := a.session.Current(); ok {
		return fmt.Sprintf("(%s)", email)
	}
	return ""
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

// fail shows err to the user and returns it. Storage faults are logged too.
func (a *App) fail(ctx context.Context, err error) error {
	if msg, ok := userMessage(err); ok {
		a.println(msg)
		return err
	}
	a.log.Error(ctx, "command failed", "error", err, "session", a.session.ID())
	a.println("Something went wrong, please try again later.")
	return err
}

// userMessage maps routine failures to the corrective text shown to the user.
func userMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, common.ErrStorageFailure):
		return "", false
	case errors.Is(err, common.ErrDuplicateAccount):
		return "User with this email already exists!", true
	case errors.Is(err, common.ErrInvalidDate):
		return "Date of birth must be 1999-01-01 or later.", true
	case errors.Is(err, common.ErrAccountNotFound), errors.Is(err, common.ErrInvalidCredential):
		return "Invalid email or password", true
	case errors.Is(err, common.ErrUnauthenticated):
		return "Please log in to access this page.", true
	case errors.Is(err, common.ErrInvalidScore), errors.Is(err, errBadNumber):
		return "Marks must be whole numbers between 0 and 100.", true
	case errors.Is(err, common.ErrNotFound), errors.Is(err, common.ErrNoData):
		return "No marks data found!", true
	case errors.Is(err, errBadDate):
		return "Date of birth must be in YYYY-MM-DD format.", true
	}
	return "", false
}
