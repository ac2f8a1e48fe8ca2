package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/markbook/internal/common"
	"github.com/dmitrijs2005/markbook/internal/logging"
	"github.com/dmitrijs2005/markbook/internal/models"
	"github.com/dmitrijs2005/markbook/internal/report"
)

// ReportService builds the statistics of the signed-in account.
type ReportService interface {
	Build(ctx context.Context) (*report.Report, error)
}

type reportService struct {
	marks   MarksService
	session Session
	log     logging.Logger
}

func NewReportService(marks MarksService, session Session, log logging.Logger) ReportService {
	return &reportService{marks: marks, session: session, log: log.With("service", "report")}
}

// Build fetches the current account's snapshot and aggregates it. A missing
// snapshot is reported as common.ErrNoData.
func (s *reportService) Build(ctx context.Context) (*report.Report, error) {
	email, err := s.session.RequireAuthenticated()
	if err != nil {
		return nil, err
	}

	snap, err := s.marks.Fetch(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNoData
		}
		return nil, err
	}

	r, err := report.Aggregate([]models.Snapshot{*snap})
	if err != nil {
		return nil, err
	}
	s.log.Debug(ctx, "report built", "email", email, "snapshots", r.Snapshots)
	return r, nil
}
