package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ryukyi/syntaxscore/internal/checker"
	"github.com/ryukyi/syntaxscore/internal/loggy"
)

// ErrNilReport is returned when Record is called without a report
var ErrNilReport = errors.New("nil report")

// Service records and retrieves check runs
type Service struct {
	repo   Repository
	logger *loggy.Logger
}

// NewService creates a new history service backed by db
func NewService(db *sql.DB, logger *loggy.Logger) *Service {
	return &Service{
		repo:   NewSQLRepository(db, logger),
		logger: logger,
	}
}

// NewServiceWithRepository creates a service with a custom repository implementation (for testing)
func NewServiceWithRepository(repo Repository, logger *loggy.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Record stores a checker report as a run
func (s *Service) Record(ctx context.Context, rep *checker.Report) (*Run, error) {
	if rep == nil {
		return nil, ErrNilReport
	}

	run, err := FromReport(rep)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveRun(ctx, run); err != nil {
		return nil, fmt.Errorf("recording run %s: %w", run.ID, err)
	}
	return run, nil
}

// ListRuns returns up to limit recent runs, newest first
func (s *Service) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	runs, err := s.repo.ListRuns(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	return runs, nil
}

// GetRun returns a run with its lines loaded
func (s *Service) GetRun(ctx context.Context, id string) (*Run, error) {
	runID, err := ParseRunID(id)
	if err != nil {
		return nil, err
	}

	run, err := s.repo.GetRun(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("getting run %s: %w", id, err)
	}

	lines, err := s.repo.GetRunLines(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("getting lines for run %s: %w", id, err)
	}
	run.Lines = lines
	return run, nil
}

// DeleteRun removes a run and its lines
func (s *Service) DeleteRun(ctx context.Context, id string) error {
	runID, err := ParseRunID(id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteRun(ctx, runID); err != nil {
		return fmt.Errorf("deleting run %s: %w", id, err)
	}
	s.logger.Debug("Run removed from history", "id", id)
	return nil
}
