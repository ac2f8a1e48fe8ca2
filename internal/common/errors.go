// Package common defines the error kinds shared by every markbook layer and a
// few small helpers around them. Callers match kinds with errors.Is.
package common

import (
	"errors"
	"fmt"
)

var (
	// Account errors.
	ErrDuplicateAccount  = errors.New("account with this email already exists")
	ErrInvalidDate       = errors.New("date of birth must not be earlier than 1999-01-01")
	ErrAccountNotFound   = errors.New("account not found")
	ErrInvalidCredential = errors.New("invalid email or password")

	// Session errors.
	ErrUnauthenticated = errors.New("please log in to access this page")

	// Marks errors.
	ErrInvalidScore = errors.New("invalid score")
	ErrNotFound     = errors.New("no marks data found")

	// Report errors.
	ErrNoData = errors.New("no data to aggregate")

	// ErrStorageFailure marks I/O level faults of the persisted stores. It is the
	// only kind that is an operator problem rather than a user mistake.
	ErrStorageFailure = errors.New("storage failure")
)

// StorageError wraps cause so that it matches both ErrStorageFailure and cause.
// A nil cause yields nil.
func StorageError(op string, cause error) error {
	if cause == nil {
		return nil
	}
	if errors.Is(cause, ErrStorageFailure) {
		return cause
	}
	return fmt.Errorf("%w: %s: %w", ErrStorageFailure, op, cause)
}

// IsUserError reports whether err is a routine validation outcome that should be
// shown to the user as a corrective message.
func IsUserError(err error) bool {
	if err == nil || errors.Is(err, ErrStorageFailure) {
		return false
	}
	for _, k := range userKinds {
		if errors.Is(err, k) {
			return true
		}
	}
	return false
}

var userKinds = []error{
	ErrDuplicateAccount,
	ErrInvalidDate,
	ErrAccountNotFound,
	ErrInvalidCredential,
	ErrUnauthenticated,
	ErrInvalidScore,
	ErrNotFound,
	ErrNoData,
}
