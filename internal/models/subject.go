package models

import (
	"fmt"

	"github.com/dmitrijs2005/markbook/internal/common"
)

// Subject is one of the five fixed exam subjects.
type Subject string

const (
	DDPA Subject = "DDPA"
	AAI  Subject = "AAI"
	FOML Subject = "FOML"
	ATSA Subject = "ATSA"
	IMAP Subject = "IMAP"
)

// declared order; every series and every stored row follows it
var subjects = [...]Subject{DDPA, AAI, FOML, ATSA, IMAP}

// Subjects returns the subject enumeration in declared order.
func Subjects() []Subject {
	out := make([]Subject, len(subjects))
	copy(out, subjects[:])
	return out
}

// Valid reports whether s belongs to the enumeration.
func (s Subject) Valid() bool {
	for _, v := range subjects {
		if v == s {
			return true
		}
	}
	return false
}

// ParseSubject maps a name to a Subject. Matching is exact.
func ParseSubject(name string) (Subject, error) {
	s := Subject(name)
	if !s.Valid() {
		return "", fmt.Errorf("unknown subject %q: %w", name, common.ErrInvalidScore)
	}
	return s, nil
}
