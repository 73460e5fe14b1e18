// Package checker implements the bracket matcher: per-line parsing, completion
// scoring and median aggregation
package checker

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNoScores is returned when no line survived parsing uncorrupted
	ErrNoScores = errors.New("no incomplete lines to score")

	// ErrEvenScoreCount is returned in strict mode when the score collection has an even length
	ErrEvenScoreCount = errors.New("even number of scores has no single middle value")

	// ErrScoreOverflow is returned when a completion score does not fit in an int64
	ErrScoreOverflow = errors.New("completion score overflows int64")
)

// Status is the outcome of parsing one line
type Status string

const (
	// StatusComplete indicates every bracket on the line was closed
	StatusComplete Status = "complete"
	// StatusIncomplete indicates brackets were left open at end of line
	StatusIncomplete Status = "incomplete"
	// StatusCorrupted indicates a closing bracket did not match
	StatusCorrupted Status = "corrupted"
)

// CorruptionError describes the first illegal closing bracket on a line
type CorruptionError struct {
	Expected rune // zero when nothing was open
	Found    rune
	Position int // rune index in the line
}

func (e *CorruptionError) Error() string {
	if e.Expected == 0 {
		return fmt.Sprintf("Expected opening bracket, but found %c instead.", e.Found)
	}
	return fmt.Sprintf("Expected %c, but found %c instead.", e.Expected, e.Found)
}

// LineResult holds the parse outcome of a single input line
type LineResult struct {
	Index            int              `json:"index"`
	Line             string           `json:"line"`
	Status           Status           `json:"status"`
	Err              *CorruptionError `json:"-"`
	ScoreErr         error            `json:"-"` // set when the completion is too long to score
	Message          string           `json:"message,omitempty"`
	Completion       string           `json:"completion,omitempty"`
	Score            int64            `json:"score"`
	SyntaxErrorScore int64            `json:"syntax_error_score,omitempty"`
}

// Corrupted reports whether the line stopped at an illegal character
func (r LineResult) Corrupted() bool {
	return r.Status == StatusCorrupted
}

// Scored reports whether the line contributes to the score collection
func (r LineResult) Scored() bool {
	return !r.Corrupted() && r.ScoreErr == nil
}

// Report aggregates the results of one analysis run
type Report struct {
	RunID            string       `json:"run_id"`
	Name             string       `json:"name"`
	Source           string       `json:"source"`
	Lines            []LineResult `json:"lines"`
	Scores           []int64      `json:"scores"`
	Median           int64        `json:"median"`
	HasMedian        bool         `json:"has_median"`
	EvenScoreCount   bool         `json:"even_score_count,omitempty"`
	SyntaxErrorScore int64        `json:"syntax_error_score"`
	UnscoredCount    int          `json:"unscored_count,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
}

// CorruptedCount returns the number of corrupted lines
func (r *Report) CorruptedCount() int {
	n := 0
	for _, l := range r.Lines {
		if l.Corrupted() {
			n++
		}
	}
	return n
}

// IncompleteCount returns the number of lines that were not corrupted
func (r *Report) IncompleteCount() int {
	return len(r.Lines) - r.CorruptedCount()
}

// Messages returns one message per corrupted or unscorable line in input order
func (r *Report) Messages() []string {
	var msgs []string
	for _, l := range r.Lines {
		switch {
		case l.Err != nil:
			msgs = append(msgs, l.Err.Error())
		case l.ScoreErr != nil:
			msgs = append(msgs, l.Message)
		}
	}
	return msgs
}
