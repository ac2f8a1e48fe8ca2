package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/markbook/internal/blob"
	"github.com/dmitrijs2005/markbook/internal/common"
	"github.com/dmitrijs2005/markbook/internal/logging"
	"github.com/dmitrijs2005/markbook/internal/models"
	"github.com/dmitrijs2005/markbook/internal/repositories/accounts"
	"github.com/dmitrijs2005/markbook/internal/repositories/marks"
	"github.com/dmitrijs2005/markbook/internal/session"
)

// ---- helpers ----

type logEntry struct {
	level, msg string
	args       []any
}

// recordingLogger keeps every call for assertions.
type recordingLogger struct {
	mu      *sync.Mutex
	entries *[]logEntry
	with    []any
}

func newRecordingLogger() *recordingLogger {
	return &recordingLogger{mu: &sync.Mutex{}, entries: &[]logEntry{}}
}

func (l *recordingLogger) add(level, msg string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	*l.entries = append(*l.entries, logEntry{level: level, msg: msg, args: append(append([]any{}, l.with...), args...)})
}

func (l *recordingLogger) Debug(_ context.Context, msg string, args ...any) { l.add("debug", msg, args) }
func (l *recordingLogger) Info(_ context.Context, msg string, args ...any)  { l.add("info", msg, args) }
func (l *recordingLogger) Warn(_ context.Context, msg string, args ...any)  { l.add("warn", msg, args) }
func (l *recordingLogger) Error(_ context.Context, msg string, args ...any) { l.add("error", msg, args) }

func (l *recordingLogger) With(args ...any) logging.Logger {
	return &recordingLogger{mu: l.mu, entries: l.entries, with: append(append([]any{}, l.with...), args...)}
}

func (l *recordingLogger) levels() []string {
	var out []string
	for _, e := range *l.entries {
		out = append(out, e.level+":"+e.msg)
	}
	return out
}

type fixture struct {
	accounts AccountService
	marks    MarksService
	reports  ReportService
	session  *session.Session
	log      *recordingLogger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st, err := blob.NewFSStore(t.TempDir())
	require.NoError(t, err)
	return newFixtureWith(accounts.NewDocumentRepository(st), marks.NewCSVRepository(st))
}

func newFixtureWith(ar accounts.Repository, mr marks.Repository) *fixture {
	sess := session.New()
	log := newRecordingLogger()
	ms := NewMarksService(mr, sess, log)
	return &fixture{
		accounts: NewAccountService(ar, sess, log),
		marks:    ms,
		reports:  NewReportService(ms, sess, log),
		session:  sess,
		log:      log,
	}
}

func registration(email, secret string) RegisterRequest {
	return RegisterRequest{
		Email:       email,
		DisplayName: "Ann Lee",
		Phone:       "+371 2000 0000",
		DateOfBirth: time.Date(2001, 5, 17, 10, 30, 0, 0, time.UTC),
		Secret:      []byte(secret),
	}
}

func scores(ddpa, aai, foml, atsa, imap int) models.Scores {
	return models.Scores{models.DDPA: ddpa, models.AAI: aai, models.FOML: foml, models.ATSA: atsa, models.IMAP: imap}
}

// ---- AccountService ----

func TestRegister_PersistsSameFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	acc, err := f.accounts.Register(ctx, registration("ann@uni.example", "s3cret"))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2001, 5, 17, 0, 0, 0, 0, time.UTC), acc.DateOfBirth)
	assert.NotEmpty(t, acc.Credential.Salt)
	assert.NotEmpty(t, acc.Credential.Verifier)

	got, err := f.accounts.Authenticate(ctx, "ann@uni.example", []byte("s3cret"))
	require.NoError(t, err)
	assert.Equal(t, acc, got)
	assert.Equal(t, []string{"info:account registered"}, f.log.levels())
}

func TestRegister_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.accounts.Register(ctx, registration("ann@uni.example", "s3cret"))
	require.NoError(t, err)

	early := registration("old@uni.example", "x")
	early.DateOfBirth = time.Date(1998, 12, 31, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		req  RegisterRequest
		want error
	}{
		{"duplicate", registration("ann@uni.example", "other"), common.ErrDuplicateAccount},
		{"early birth date", early, common.ErrInvalidDate},
		{"empty email", registration("", "x"), common.ErrInvalidCredential},
		{"path email", registration("../etc", "x"), common.ErrInvalidCredential},
		{"empty secret", registration("bob@uni.example", ""), common.ErrInvalidCredential},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.accounts.Register(ctx, tc.req)
			require.ErrorIs(t, err, tc.want)
		})
	}

	_, err = f.accounts.Authenticate(ctx, "old@uni.example", []byte("x"))
	require.ErrorIs(t, err, common.ErrAccountNotFound)
}

func TestRegister_EmailNamedLikeStoreObject(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.accounts.Register(ctx, registration(accounts.DocumentKey, "x"))
	require.NoError(t, err)

	_, err = f.accounts.Register(ctx, registration("ann@uni.example", "s3cret"))
	require.NoError(t, err)
	_, err = f.accounts.Authenticate(ctx, "ann@uni.example", []byte("s3cret"))
	require.NoError(t, err)
	_, err = f.accounts.Authenticate(ctx, accounts.DocumentKey, []byte("x"))
	require.NoError(t, err)
}

// unwritableStore accepts namespaces but fails every object write.
type unwritableStore struct {
	*blob.FSStore
}

func (unwritableStore) Put(context.Context, string, []byte) error { return errors.New("disk full") }

func TestRegister_StorageFailureLeavesNoPartialState(t *testing.T) {
	st, err := blob.NewFSStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	broken := newFixtureWith(accounts.NewDocumentRepository(unwritableStore{st}), marks.NewCSVRepository(st))
	_, err = broken.accounts.Register(ctx, registration("ann@uni.example", "s3cret"))
	require.ErrorIs(t, err, common.ErrStorageFailure)

	ok, err := st.NamespaceExists(ctx, "ann@uni.example")
	require.NoError(t, err)
	assert.False(t, ok)

	f := newFixtureWith(accounts.NewDocumentRepository(st), marks.NewCSVRepository(st))
	_, err = f.accounts.Register(ctx, registration("ann@uni.example", "s3cret"))
	require.NoError(t, err)
	_, err = f.accounts.Authenticate(ctx, "ann@uni.example", []byte("s3cret"))
	require.NoError(t, err)
}

func TestRegister_BoundaryDateAccepted(t *testing.T) {
	f := newFixture(t)
	req := registration("ann@uni.example", "x")
	req.DateOfBirth = models.MinDateOfBirth
	_, err := f.accounts.Register(context.Background(), req)
	require.NoError(t, err)
}

func TestRegister_WipesSecret(t *testing.T) {
	f := newFixture(t)
	req := registration("ann@uni.example", "s3cret")
	_, err := f.accounts.Register(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, make([]byte, len("s3cret")), req.Secret)
}

func TestAuthenticate_ExactMatchOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.accounts.Register(ctx, registration("ann@uni.example", "S3cret"))
	require.NoError(t, err)

	for _, wrong := range []string{"s3cret", "S3cret ", "", "S3cre"} {
		_, err := f.accounts.Authenticate(ctx, "ann@uni.example", []byte(wrong))
		require.ErrorIs(t, err, common.ErrInvalidCredential, "secret %q", wrong)
	}

	_, err = f.accounts.Authenticate(ctx, "ANN@uni.example", []byte("S3cret"))
	require.ErrorIs(t, err, common.ErrAccountNotFound)

	_, err = f.accounts.Authenticate(ctx, "ann@uni.example", []byte("S3cret"))
	require.NoError(t, err)
}

func TestSignIn_FillsSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.accounts.Register(ctx, registration("ann@uni.example", "s3cret"))
	require.NoError(t, err)

	_, err = f.accounts.SignIn(ctx, "ann@uni.example", []byte("bad"))
	require.ErrorIs(t, err, common.ErrInvalidCredential)
	_, ok := f.session.Current()
	assert.False(t, ok)

	_, err = f.accounts.SignIn(ctx, "ann@uni.example", []byte("s3cret"))
	require.NoError(t, err)
	email, ok := f.session.Current()
	assert.True(t, ok)
	assert.Equal(t, "ann@uni.example", email)
}

// ---- MarksService ----

func signedIn(t *testing.T) *fixture {
	t.Helper()
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.accounts.Register(ctx, registration("ann@uni.example", "s3cret"))
	require.NoError(t, err)
	_, err = f.accounts.SignIn(ctx, "ann@uni.example", []byte("s3cret"))
	require.NoError(t, err)
	return f
}

func TestSubmit_RequiresMatchingSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.marks.Submit(ctx, "ann@uni.example", scores(1, 2, 3, 4, 5))
	require.ErrorIs(t, err, common.ErrUnauthenticated)

	f = signedIn(t)
	_, err = f.marks.Submit(ctx, "someone@uni.example", scores(1, 2, 3, 4, 5))
	require.ErrorIs(t, err, common.ErrUnauthenticated)
}

func TestSubmit_IdempotentFetch(t *testing.T) {
	f := signedIn(t)
	ctx := context.Background()

	_, err := f.marks.Fetch(ctx, "ann@uni.example")
	require.ErrorIs(t, err, common.ErrNotFound)

	_, err = f.marks.Submit(ctx, "ann@uni.example", scores(80, 60, 90, 70, 50))
	require.NoError(t, err)
	first, err := f.marks.Fetch(ctx, "ann@uni.example")
	require.NoError(t, err)

	_, err = f.marks.Submit(ctx, "ann@uni.example", scores(80, 60, 90, 70, 50))
	require.NoError(t, err)
	second, err := f.marks.Fetch(ctx, "ann@uni.example")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSubmit_ScoreBounds(t *testing.T) {
	f := signedIn(t)
	ctx := context.Background()

	for _, v := range []int{-1, 101} {
		_, err := f.marks.Submit(ctx, "ann@uni.example", scores(v, 50, 50, 50, 50))
		require.ErrorIs(t, err, common.ErrInvalidScore, "value %d", v)
	}
	_, err := f.marks.Fetch(ctx, "ann@uni.example")
	require.ErrorIs(t, err, common.ErrNotFound, "rejected scores must not be stored")

	for _, v := range []int{0, 100} {
		_, err := f.marks.Submit(ctx, "ann@uni.example", scores(v, v, v, v, v))
		require.NoError(t, err, "value %d", v)
	}

	partial := models.Scores{models.DDPA: 10}
	_, err = f.marks.Submit(ctx, "ann@uni.example", partial)
	require.ErrorIs(t, err, common.ErrInvalidScore)

	unknown := scores(1, 2, 3, 4, 5)
	unknown["XYZ"] = 1
	_, err = f.marks.Submit(ctx, "ann@uni.example", unknown)
	require.ErrorIs(t, err, common.ErrInvalidScore)
}

// ---- ReportService ----

func TestReport_NoDataBeforeSubmit(t *testing.T) {
	f := signedIn(t)
	_, err := f.reports.Build(context.Background())
	require.ErrorIs(t, err, common.ErrNoData)
}

func TestReport_RequiresSession(t *testing.T) {
	f := newFixture(t)
	_, err := f.reports.Build(context.Background())
	require.ErrorIs(t, err, common.ErrUnauthenticated)
}

func TestReport_Series(t *testing.T) {
	f := signedIn(t)
	ctx := context.Background()
	_, err := f.marks.Submit(ctx, "ann@uni.example", scores(80, 60, 90, 70, 50))
	require.NoError(t, err)

	r, err := f.reports.Build(ctx)
	require.NoError(t, err)
	for i, want := range []int{80, 60, 90, 70, 50} {
		assert.Equal(t, float64(want), r.Average[i].Value)
		assert.Equal(t, want, r.Distribution[i].Total)
		assert.Equal(t, []int{want}, r.Raw[i].Scores)
	}
}

// ---- storage faults ----

type faultyAccounts struct{ err error }

func (f faultyAccounts) Load(context.Context) (map[string]models.Account, error) { return nil, f.err }
func (f faultyAccounts) Save(context.Context, map[string]models.Account) error   { return f.err }
func (f faultyAccounts) Create(context.Context, models.Account) error            { return f.err }
func (f faultyAccounts) Get(context.Context, string) (*models.Account, error)    { return nil, f.err }

type faultyMarks struct{ err error }

func (f faultyMarks) Put(context.Context, models.Snapshot) error            { return f.err }
func (f faultyMarks) Get(context.Context, string) (*models.Snapshot, error) { return nil, f.err }

func TestStorageFaultsAreLoggedAsErrors(t *testing.T) {
	fault := common.StorageError("read accounts", errors.New("disk gone"))
	f := newFixtureWith(faultyAccounts{err: fault}, faultyMarks{err: fault})
	ctx := context.Background()

	_, err := f.accounts.Register(ctx, registration("ann@uni.example", "x"))
	require.ErrorIs(t, err, common.ErrStorageFailure)
	_, err = f.accounts.Authenticate(ctx, "ann@uni.example", []byte("x"))
	require.ErrorIs(t, err, common.ErrStorageFailure)

	f.session.SignIn(models.Account{Email: "ann@uni.example"})
	_, err = f.marks.Submit(ctx, "ann@uni.example", scores(1, 2, 3, 4, 5))
	require.ErrorIs(t, err, common.ErrStorageFailure)
	_, err = f.reports.Build(ctx)
	require.ErrorIs(t, err, common.ErrStorageFailure)

	assert.Equal(t, []string{
		"error:registration failed",
		"error:authentication failed",
		"error:submit failed",
		"error:fetch failed",
	}, f.log.levels())
}

func TestRejectionsAreLoggedAsWarnings(t *testing.T) {
	f := newFixture(t)
	_, err := f.accounts.Authenticate(context.Background(), "nobody@uni.example", []byte("x"))
	require.ErrorIs(t, err, common.ErrAccountNotFound)

	require.Len(t, *f.log.entries, 1)
	e := (*f.log.entries)[0]
	assert.Equal(t, "warn", e.level)
	assert.Contains(t, fmt.Sprint(e.args...), "nobody@uni.example")
	assert.Contains(t, e.args, "accounts")
}
