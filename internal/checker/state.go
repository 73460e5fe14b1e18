package checker

import (
	"strings"

	"github.com/ryukyi/syntaxscore/internal/bracket"
)

// ParserState is the stack of brackets still open on the current line
type ParserState struct {
	stack []bracket.Kind
}

// NewParserState returns an empty parser state
func NewParserState() *ParserState {
	return &ParserState{}
}

// Push records an opening bracket
func (s *ParserState) Push(k bracket.Kind) {
	s.stack = append(s.stack, k)
}

// Pop removes the top of the stack and reports whether it was k.
// An empty stack returns false.
func (s *ParserState) Pop(k bracket.Kind) bool {
	if len(s.stack) == 0 {
		return false
	}
	top := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	return top == k
}

// Peek returns the innermost open bracket
func (s *ParserState) Peek() (bracket.Kind, bool) {
	if len(s.stack) == 0 {
		return 0, false
	}
	return s.stack[len(s.stack)-1], true
}

// Len returns the number of open brackets
func (s *ParserState) Len() int {
	return len(s.stack)
}

// CompletionString returns the closing characters needed to close every open
// bracket, innermost first
func (s *ParserState) CompletionString() string {
	var sb strings.Builder
	sb.Grow(len(s.stack))
	for i := len(s.stack) - 1; i >= 0; i-- {
		sb.WriteRune(s.stack[i].Closing())
	}
	return sb.String()
}
