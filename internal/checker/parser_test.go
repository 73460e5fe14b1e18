package checker

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryukyi/syntaxscore/internal/bracket"
)

func TestParserStateHasEmptyCompletionString(t *testing.T) {
	state := NewParserState()
	HandleOpening(state, '(')
	require.NoError(t, HandleClosing(state, ')'))

	assert.Empty(t, state.CompletionString())
	assert.Zero(t, state.Len())
}

func TestParserStateReturnsCompletionString(t *testing.T) {
	state := NewParserState()
	HandleOpening(state, '(')
	HandleOpening(state, '(')
	require.NoError(t, HandleClosing(state, ')'))

	assert.Equal(t, ")", state.CompletionString())
}

func TestPushPopRoundTrip(t *testing.T) {
	for _, k := range bracket.Kinds {
		t.Run(k.String(), func(t *testing.T) {
			state := NewParserState()
			state.Push(bracket.Curly)
			before := state.CompletionString()

			state.Push(k)
			assert.True(t, state.Pop(k))
			assert.Equal(t, before, state.CompletionString())
			assert.Equal(t, 1, state.Len())
		})
	}
}

func TestPopMismatchAndUnderflow(t *testing.T) {
	state := NewParserState()
	assert.False(t, state.Pop(bracket.Round), "empty stack never matches")

	state.Push(bracket.Square)
	assert.False(t, state.Pop(bracket.Round))
	assert.Zero(t, state.Len(), "mismatching pop still consumes the top")

	_, ok := state.Peek()
	assert.False(t, ok)
}

func TestCompletionStringIsInnermostFirst(t *testing.T) {
	state := NewParserState()
	for _, ch := range "[({<" {
		HandleOpening(state, ch)
	}
	assert.Equal(t, ">})]", state.CompletionString())
}

func TestCorruptedLines(t *testing.T) {
	examples := []struct {
		input    string
		expected string
	}{
		{"{([(<{}[<>[]}>{[]{[(<()>", "Expected ], but found } instead."},
		{"[[<[([]))<([[{}[[()]]]", "Expected ], but found ) instead."},
		{"[{[{({}]{}}([{[{{{}}([]", "Expected ), but found ] instead."},
		{"[<(<(<(<{}))><([]([]()", "Expected >, but found ) instead."},
		{"<{([([[(<>()){}]>(<<{{", "Expected ], but found > instead."},
	}

	for _, ex := range examples {
		t.Run(ex.input, func(t *testing.T) {
			state := NewParserState()
			var actual string
			for _, ch := range ex.input {
				if err := HandleClosing(state, ch); err != nil {
					actual = err.Error()
					break
				}
				HandleOpening(state, ch)
			}
			assert.Equal(t, ex.expected, actual)

			result := CheckLine(0, ex.input)
			assert.Equal(t, StatusCorrupted, result.Status)
			assert.Equal(t, ex.expected, result.Message)
			assert.Zero(t, result.Score)
			assert.Empty(t, result.Completion)
		})
	}
}

func TestClosingWithNothingOpen(t *testing.T) {
	result := CheckLine(4, "]()")
	require.True(t, result.Corrupted())
	require.NotNil(t, result.Err)
	assert.Equal(t, "Expected opening bracket, but found ] instead.", result.Message)
	assert.Equal(t, rune(0), result.Err.Expected)
	assert.Equal(t, ']', result.Err.Found)
	assert.Equal(t, 0, result.Err.Position)
	assert.Equal(t, 4, result.Index)
	assert.Equal(t, int64(57), result.SyntaxErrorScore)
}

func TestCheckLineStopsAtFirstCorruption(t *testing.T) {
	// The second illegal ">" is never reached
	result := CheckLine(0, "(]>")
	require.True(t, result.Corrupted())
	assert.Equal(t, "Expected ), but found ] instead.", result.Message)
	assert.Equal(t, 1, result.Err.Position)
	assert.Equal(t, int64(57), result.SyntaxErrorScore)
}

func TestCheckLineOutcomes(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		status     Status
		completion string
		score      int64
	}{
		{name: "balanced", line: "([]{<>})", status: StatusComplete},
		{name: "empty line", line: "", status: StatusComplete},
		{name: "non-bracket characters ignored", line: "(a [b] c)", status: StatusComplete},
		{name: "incomplete", line: "[({(<(())[]>[[{[]{<()<>>", status: StatusIncomplete, completion: "}}]])})]", score: 288957},
		{name: "incomplete with noise", line: "<x{", status: StatusIncomplete, completion: "}>", score: 19},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CheckLine(0, tt.line)
			assert.Equal(t, tt.status, result.Status)
			assert.Equal(t, tt.completion, result.Completion)
			assert.Equal(t, tt.score, result.Score)
			assert.Nil(t, result.Err)
			assert.Empty(t, result.Message)
		})
	}
}

func TestCorruptionPositionCountsRunes(t *testing.T) {
	result := CheckLine(0, "(é>")
	require.True(t, result.Corrupted())
	assert.Equal(t, 2, result.Err.Position)
}

// nest opens kinds outermost first and closes them in reverse
func nest(kinds []bracket.Kind) string {
	var sb strings.Builder
	for _, k := range kinds {
		sb.WriteRune(k.Opening())
	}
	for i := len(kinds) - 1; i >= 0; i-- {
		sb.WriteRune(kinds[i].Closing())
	}
	return sb.String()
}

// nestings returns every chain of up to depth nested brackets over all four kinds
func nestings(depth int) []string {
	var out []string
	var build func(prefix []bracket.Kind)
	build = func(prefix []bracket.Kind) {
		if len(prefix) > 0 {
			out = append(out, nest(prefix))
		}
		if len(prefix) == depth {
			return
		}
		for _, k := range bracket.Kinds {
			build(append(slices.Clone(prefix), k))
		}
	}
	build(nil)
	return out
}

func validSequences() []string {
	chains := nestings(3)
	short := nestings(2)

	lines := slices.Clone(chains)
	for _, a := range short {
		for _, b := range short {
			lines = append(lines, a+b)
		}
	}
	for _, k := range bracket.Kinds {
		for _, a := range short {
			lines = append(lines, string(k.Opening())+a+a+string(k.Closing()))
		}
	}
	return lines
}

func TestValidSequencesLeaveEmptyStack(t *testing.T) {
	lines := validSequences()
	require.Len(t, lines, 4+16+64+20*20+4*20)

	for _, line := range lines {
		state := NewParserState()
		for _, ch := range line {
			require.NoError(t, HandleClosing(state, ch), line)
			HandleOpening(state, ch)
		}
		assert.Equal(t, 0, state.Len(), line)
		assert.Empty(t, state.CompletionString(), line)

		result := CheckLine(0, line)
		assert.Equal(t, StatusComplete, result.Status, line)
		assert.Equal(t, int64(0), result.Score, line)
	}
}

func TestDeeplyNestedLineIsNotScored(t *testing.T) {
	result := CheckLine(4, strings.Repeat("(", 30))

	assert.Equal(t, StatusIncomplete, result.Status)
	assert.Equal(t, strings.Repeat(")", 30), result.Completion)
	assert.ErrorIs(t, result.ScoreErr, ErrScoreOverflow)
	assert.Equal(t, int64(0), result.Score)
	assert.False(t, result.Scored())
	assert.Contains(t, result.Message, "Line 5 cannot be scored")
}

func TestDeepestScorableLine(t *testing.T) {
	result := CheckLine(0, strings.Repeat("<", MaxScoredCompletion))

	require.NoError(t, result.ScoreErr)
	assert.True(t, result.Scored())
	assert.Equal(t, int64(7450580596923828124), result.Score) // 5^27 - 1
}
