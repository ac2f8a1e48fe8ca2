package services

import (
	"context"

	"github.com/dmitrijs2005/markbook/internal/common"
	"github.com/dmitrijs2005/markbook/internal/logging"
	"github.com/dmitrijs2005/markbook/internal/models"
	"github.com/dmitrijs2005/markbook/internal/repositories/marks"
)

// MarksService stores and reads the marks snapshot of an account. Submit only
// accepts the signed-in account's email.
type MarksService interface {
	Submit(ctx context.Context, email string, scores models.Scores) (*models.Snapshot, error)
	Fetch(ctx context.Context, email string) (*models.Snapshot, error)
}

type marksService struct {
	repo    marks.Repository
	session Session
	log     logging.Logger
}

func NewMarksService(repo marks.Repository, session Session, log logging.Logger) MarksService {
	return &marksService{repo: repo, session: session, log: log.With("service", "marks")}
}

func (s *marksService) Submit(ctx context.Context, email string, scores models.Scores) (*models.Snapshot, error) {
	current, err := s.session.RequireAuthenticated()
	if err == nil && current != email {
		err = common.ErrUnauthenticated
	}
	if err != nil {
		logFailure(ctx, s.log, "submit rejected", err, "email", email)
		return nil, err
	}

	snap, err := models.NewSnapshot(email, scores)
	if err != nil {
		logFailure(ctx, s.log, "submit rejected", err, "email", email)
		return nil, err
	}

	if err := s.repo.Put(ctx, *snap); err != nil {
		logFailure(ctx, s.log, "submit failed", err, "email", email)
		return nil, err
	}

	s.log.Info(ctx, "marks submitted", "email", email)
	return snap, nil
}

func (s *marksService) Fetch(ctx context.Context, email string) (*models.Snapshot, error) {
	snap, err := s.repo.Get(ctx, email)
	if err != nil {
		logFailure(ctx, s.log, "fetch failed", err, "email", email)
		return nil, err
	}
	s.log.Debug(ctx, "marks fetched", "email", email)
	return snap, nil
}
