package checker

import (
	"fmt"

	"github.com/ryukyi/syntaxscore/internal/bracket"
)

// HandleOpening pushes ch when it is an opening bracket. Other characters are ignored.
func HandleOpening(state *ParserState, ch rune) {
	if k, ok := bracket.FromOpening(ch); ok {
		state.Push(k)
	}
}

// HandleClosing pops and compares when ch is a closing bracket. It returns a
// *CorruptionError when nothing is open or the innermost open bracket is of a
// different kind. Other characters are ignored.
func HandleClosing(state *ParserState, ch rune) error {
	k, ok := bracket.FromClosing(ch)
	if !ok {
		return nil
	}

	top, ok := state.Peek()
	if !ok {
		return &CorruptionError{Found: ch}
	}

	if !state.Pop(k) {
		return &CorruptionError{Expected: top.Closing(), Found: ch}
	}
	return nil
}

// CheckLine parses a single line and stops at the first corruption
func CheckLine(index int, line string) LineResult {
	result := LineResult{Index: index, Line: line}
	state := NewParserState()

	pos := 0
	for _, ch := range line {
		if err := HandleClosing(state, ch); err != nil {
			cerr := err.(*CorruptionError)
			cerr.Position = pos
			result.Status = StatusCorrupted
			result.Err = cerr
			result.Message = cerr.Error()
			result.SyntaxErrorScore = SyntaxErrorPoints(cerr.Found)
			return result
		}
		HandleOpening(state, ch)
		pos++
	}

	result.Completion = state.CompletionString()
	score, err := ScoreCompletion(result.Completion)
	if err != nil {
		result.ScoreErr = err
		result.Message = fmt.Sprintf("Line %d cannot be scored: %s.", index+1, err)
	}
	result.Score = score
	if result.Completion == "" {
		result.Status = StatusComplete
	} else {
		result.Status = StatusIncomplete
	}
	return result
}
