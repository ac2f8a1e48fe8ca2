package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/markbook/internal/common"
)

// DateLayout is the ISO date format used for dateOfBirth in every store.
const DateLayout = "2006-01-02"

// MinDateOfBirth is the earliest accepted date of birth.
var MinDateOfBirth = time.Date(1999, time.January, 1, 0, 0, 0, 0, time.UTC)

// Account is a registered principal keyed by email.
type Account struct {
	Email       string
	DisplayName string
	Phone       string
	DateOfBirth time.Time
	Credential  Credential
}

// Credential is the stored, one-way reference for a secret. The raw secret is
// never kept.
type Credential struct {
	Salt     []byte
	Verifier []byte
}

// DateOnly drops the clock part of t, keeping its calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ValidateDateOfBirth returns common.ErrInvalidDate for dates before MinDateOfBirth.
func ValidateDateOfBirth(dob time.Time) error {
	if DateOnly(dob).Before(MinDateOfBirth) {
		return common.ErrInvalidDate
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// ValidateEmail rejects identifiers that cannot key an account: empty ones and
// ones that are not usable as a storage namespace name.
func ValidateEmail(email string) error {
	switch {
	case strings.TrimSpace(email) == "":
		return fmt.Errorf("empty email: %w", common.ErrInvalidCredential)
	case email == ".", email == "..", strings.ContainsAny(email, `/\`+"\x00"):
		return fmt.Errorf("email %q is not allowed: %w", email, common.ErrInvalidCredential)
	}
	return nil
}
