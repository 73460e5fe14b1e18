// Package history persists check runs so earlier results can be listed and compared
package history

import (
	"errors"
	"fmt"
	"time"

	"github.com/ryukyi/syntaxscore/internal/checker"
	"github.com/ryukyi/syntaxscore/internal/ulid"
)

// ErrInvalidRunID is returned for identifiers that are not run-prefixed ULIDs
var ErrInvalidRunID = errors.New("invalid run ID")

// Run is one recorded check invocation
type Run struct {
	ID               ulid.ULID
	Name             string
	Source           string
	LineCount        int
	CorruptedCount   int
	IncompleteCount  int
	MedianScore      *int64 // nil when no line produced a score
	SyntaxErrorScore int64
	EvenScoreCount   bool
	CreatedAt        time.Time
	Lines            []*LineRecord
}

// LineRecord is the stored outcome of one input line
type LineRecord struct {
	RunID            ulid.ULID
	Index            int
	Content          string
	Status           checker.Status
	Message          string
	Completion       string
	Score            int64
	SyntaxErrorScore int64
}

// ParseRunID parses a "run-<ULID>" identifier
func ParseRunID(id string) (ulid.ULID, error) {
	parsed, err := ulid.Parse(id)
	if err != nil {
		return ulid.ULID{}, fmt.Errorf("%w %q: %w", ErrInvalidRunID, id, err)
	}
	if parsed.Prefix() != ulid.PrefixRun {
		return ulid.ULID{}, fmt.Errorf("%w %q: prefix must be %q", ErrInvalidRunID, id, ulid.PrefixRun)
	}
	return parsed, nil
}

// FromReport converts a checker report into a storable run
func FromReport(rep *checker.Report) (*Run, error) {
	id, err := ParseRunID(rep.RunID)
	if err != nil {
		return nil, err
	}

	run := &Run{
		ID:               id,
		Name:             rep.Name,
		Source:           rep.Source,
		LineCount:        len(rep.Lines),
		CorruptedCount:   rep.CorruptedCount(),
		IncompleteCount:  rep.IncompleteCount(),
		SyntaxErrorScore: rep.SyntaxErrorScore,
		EvenScoreCount:   rep.EvenScoreCount,
		CreatedAt:        rep.CreatedAt,
		Lines:            make([]*LineRecord, 0, len(rep.Lines)),
	}
	if rep.HasMedian {
		median := rep.Median
		run.MedianScore = &median
	}

	for _, l := range rep.Lines {
		run.Lines = append(run.Lines, &LineRecord{
			RunID:            id,
			Index:            l.Index,
			Content:          l.Line,
			Status:           l.Status,
			Message:          l.Message,
			Completion:       l.Completion,
			Score:            l.Score,
			SyntaxErrorScore: l.SyntaxErrorScore,
		})
	}
	return run, nil
}

func checkerStatus(s string) checker.Status {
	switch checker.Status(s) {
	case checker.StatusComplete, checker.StatusIncomplete, checker.StatusCorrupted:
		return checker.Status(s)
	default:
		return checker.Status("unknown")
	}
}
