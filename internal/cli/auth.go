package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/markbook/internal/common"
	"github.com/dmitrijs2005/markbook/internal/models"
	"github.com/dmitrijs2005/markbook/internal/services"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

var errBadDate = errors.New("bad date format")

// Register asks for the sign-up form and creates the account. The user has to
// log in afterwards.
func (a *App) Register(ctx context.Context) error {
	var req services.RegisterRequest
	var err error

	if req.DisplayName, err = getSimpleText(a.reader, "Name", a.out); err != nil {
		return err
	}
	if req.Phone, err = getSimpleText(a.reader, "Phone", a.out); err != nil {
		return err
	}
	dob, err := getSimpleText(a.reader, "Date of birth (YYYY-MM-DD, not before 1999-01-01)", a.out)
	if err != nil {
		return err
	}
	if req.Email, err = getSimpleText(a.reader, "Email", a.out); err != nil {
		return err
	}
	if req.Secret, err = getPassword(a.reader, a.out); err != nil {
		return err
	}
	defer common.WipeByteArray(req.Secret)

	if req.DateOfBirth, err = models.ParseDate(dob); err != nil {
		return a.fail(ctx, errBadDate)
	}

	if _, err := a.accounts.Register(ctx, req); err != nil {
		return a.fail(ctx, err)
	}

	a.println("User registered successfully! Please log in.")
	return nil
}

// Login authenticates and fills the session. A failed login keeps the
// previous session.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if _, err := a.accounts.SignIn(ctx, email, password); err != nil {
		return a.fail(ctx, err)
	}

	a.println("Logged in successfully!")
	return nil
}

// WhoAmI prints the signed-in email.
func (a *App) WhoAmI(ctx context.Context) error {
	email, err := a.session.RequireAuthenticated()
	if err != nil {
		return a.fail(ctx, err)
	}
	a.println("Logged in as", email)
	return nil
}
