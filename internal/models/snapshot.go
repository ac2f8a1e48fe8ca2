package models

import (
	"fmt"

	"github.com/dmitrijs2005/markbook/internal/common"
)

const (
	MinScore = 0
	MaxScore = 100
)

// Scores maps each subject to an integer mark.
type Scores map[Subject]int

// Validate checks that scores holds every subject exactly once, nothing else,
// and that each mark lies in [MinScore, MaxScore]. Failures wrap
// common.ErrInvalidScore.
func (s Scores) Validate() error {
	for subj, v := range s {
		if !subj.Valid() {
			return fmt.Errorf("unknown subject %q: %w", subj, common.ErrInvalidScore)
		}
		if v < MinScore || v > MaxScore {
			return fmt.Errorf("%s=%d is outside [%d,%d]: %w", subj, v, MinScore, MaxScore, common.ErrInvalidScore)
		}
	}
	for _, subj := range subjects {
		if _, ok := s[subj]; !ok {
			return fmt.Errorf("missing score for %s: %w", subj, common.ErrInvalidScore)
		}
	}
	return nil
}

// Values returns the marks in subject order. Missing subjects read as zero.
func (s Scores) Values() []int {
	out := make([]int, len(subjects))
	for i, subj := range subjects {
		out[i] = s[subj]
	}
	return out
}

// ScoresFromValues builds Scores from marks given in subject order.
func ScoresFromValues(values []int) (Scores, error) {
	if len(values) != len(subjects) {
		return nil, fmt.Errorf("expected %d marks, got %d: %w", len(subjects), len(values), common.ErrInvalidScore)
	}
	s := make(Scores, len(subjects))
	for i, subj := range subjects {
		s[subj] = values[i]
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Snapshot is the single stored set of marks of one account.
type Snapshot struct {
	Email  string
	Scores Scores
}

// NewSnapshot validates scores and returns a snapshot owning a private copy.
func NewSnapshot(email string, scores Scores) (*Snapshot, error) {
	if err := scores.Validate(); err != nil {
		return nil, err
	}
	cp := make(Scores, len(scores))
	for k, v := range scores {
		cp[k] = v
	}
	return &Snapshot{Email: email, Scores: cp}, nil
}
