package checker

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ryukyi/syntaxscore/internal/config"
	"github.com/ryukyi/syntaxscore/internal/input"
	"github.com/ryukyi/syntaxscore/internal/loggy"
	"github.com/ryukyi/syntaxscore/internal/utils"
)

// Service runs the bracket matcher over whole inputs
type Service struct {
	config *config.Config
	logger *loggy.Logger
	now    func() time.Time
	naming func() string
}

// NewService creates a new checker service
func NewService(cfg *config.Config, logger *loggy.Logger) *Service {
	return &Service{
		config: cfg,
		logger: logger,
		now:    time.Now,
		naming: utils.GenerateRunName,
	}
}

// Workers returns the number of lines parsed concurrently
func (s *Service) Workers() int {
	if s.config == nil || s.config.Analysis.Workers <= 0 {
		return 1
	}
	return s.config.Analysis.Workers
}

func (s *Service) strictMedian() bool {
	return s.config != nil && s.config.Analysis.StrictMedian
}

// Analyze reads every line from src and checks them
func (s *Service) Analyze(ctx context.Context, src input.LineSource) (*Report, error) {
	lines, err := src.Lines(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading input lines: %w", err)
	}

	report, err := s.CheckLines(ctx, lines)
	if err != nil {
		return nil, err
	}
	report.Source = src.Name()
	return report, nil
}

// CheckLines checks lines and aggregates their scores. Results keep input order.
func (s *Service) CheckLines(ctx context.Context, lines []string) (*Report, error) {
	report := &Report{
		RunID:     loggy.NewRunID(),
		Name:      s.naming(),
		CreatedAt: s.now().UTC(),
	}

	ctx = loggy.WithRunID(loggy.WithLogger(ctx, s.logger), report.RunID)
	logger := loggy.FromContext(ctx)
	logger.Debug("Checking lines", "lines", len(lines), "workers", s.Workers())

	results, err := s.checkAll(ctx, lines)
	if err != nil {
		return nil, fmt.Errorf("checking lines: %w", err)
	}
	report.Lines = results

	scores := make([]int64, 0, len(results))
	for _, r := range results {
		if r.Corrupted() {
			logger.Debug("Corrupted line", "index", r.Index, "message", r.Message)
			report.SyntaxErrorScore += r.SyntaxErrorScore
			continue
		}
		if r.ScoreErr != nil {
			logger.Warn("Line left out of scores", "index", r.Index, "error", r.ScoreErr)
			report.UnscoredCount++
			continue
		}
		scores = append(scores, r.Score)
	}
	slices.Sort(scores)
	report.Scores = scores

	median, err := MedianScore(scores)
	switch {
	case errors.Is(err, ErrNoScores):
		logger.Warn("No incomplete lines, median unavailable", "lines", len(lines))
	case err != nil:
		return nil, err
	default:
		report.Median = median
		report.HasMedian = true
	}

	if IsEvenCount(scores) {
		report.EvenScoreCount = true
		if s.strictMedian() {
			return nil, fmt.Errorf("%w: %d scores", ErrEvenScoreCount, len(scores))
		}
		logger.Warn("Even number of scores, reporting element at len/2", "scores", len(scores), "median", median)
	}

	logger.Info("Lines checked",
		"lines", len(results),
		"corrupted", report.CorruptedCount(),
		"scores", len(scores),
		"median", report.Median,
	)
	return report, nil
}

func (s *Service) checkAll(ctx context.Context, lines []string) ([]LineResult, error) {
	results := make([]LineResult, len(lines))

	workers := s.Workers()
	if workers == 1 {
		for i, line := range lines {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			results[i] = CheckLine(i, line)
		}
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, line := range lines {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = CheckLine(i, line)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
