package checker

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateScoreEmptyString(t *testing.T) {
	assert.Equal(t, int64(0), CalculateScore(""))
}

func TestCalculateScoreSingleCharacter(t *testing.T) {
	assert.Equal(t, int64(1), CalculateScore(")"))
	assert.Equal(t, int64(2), CalculateScore("]"))
	assert.Equal(t, int64(3), CalculateScore("}"))
	assert.Equal(t, int64(4), CalculateScore(">"))
}

func TestCalculateScoreMultipleCharacters(t *testing.T) {
	tests := []struct {
		completion string
		expected   int64
	}{
		{")>", 9},    // 5 * ((5 * 0) + 1) + 4
		{"]})", 66},  // 5 * (5 * ((5 * 0) + 2) + 3) + 1
		{"}>", 19},   // 5 * ((5 * 0) + 3) + 4
		{"])}>", 294},
		{"}}>}>))))", 1480781},
		{"}}]])})]", 288957},
		{")}>]})", 5566},
		{"]]}}]}]}>", 995444},
	}

	for _, tt := range tests {
		t.Run(tt.completion, func(t *testing.T) {
			assert.Equal(t, tt.expected, CalculateScore(tt.completion))
		})
	}
}

func TestCalculateScorePanicsOnUnknownCharacter(t *testing.T) {
	assert.Panics(t, func() { CalculateScore(")x") })
	assert.Panics(t, func() { CalculateScore("(") })
}

func TestSyntaxErrorPoints(t *testing.T) {
	assert.Equal(t, int64(3), SyntaxErrorPoints(')'))
	assert.Equal(t, int64(57), SyntaxErrorPoints(']'))
	assert.Equal(t, int64(1197), SyntaxErrorPoints('}'))
	assert.Equal(t, int64(25137), SyntaxErrorPoints('>'))
	assert.Panics(t, func() { SyntaxErrorPoints('(') })
}

func TestFindMedianScore(t *testing.T) {
	scores := []int64{294, 5566, 288957, 995444, 1480781}
	median, err := MedianScore(scores)
	require.NoError(t, err)
	assert.Equal(t, int64(288957), median)
}

func TestMedianScoreSortsCopy(t *testing.T) {
	scores := []int64{1480781, 294, 995444, 5566, 288957}
	median, err := MedianScore(scores)
	require.NoError(t, err)
	assert.Equal(t, int64(288957), median)
	assert.Equal(t, []int64{1480781, 294, 995444, 5566, 288957}, scores, "input left untouched")
}

func TestMedianScoreEvenCountUsesHalfLengthIndex(t *testing.T) {
	scores := []int64{40, 10, 30, 20}
	median, err := MedianScore(scores)
	require.NoError(t, err)
	assert.Equal(t, int64(30), median)
	assert.True(t, IsEvenCount(scores))
	assert.False(t, IsEvenCount(scores[:3]))
}

func TestMedianScoreEmpty(t *testing.T) {
	_, err := MedianScore(nil)
	assert.ErrorIs(t, err, ErrNoScores)
	assert.False(t, IsEvenCount(nil))
}

func TestScoreCompletionOverflow(t *testing.T) {
	tests := []struct {
		name       string
		completion string
		want       int64
		overflow   bool
	}{
		{name: "27 angle fits", completion: strings.Repeat(">", 27), want: 7450580596923828124},
		{name: "27 round fits", completion: strings.Repeat(")", 27), want: 1862645149230957031},
		{name: "28 angle wraps", completion: strings.Repeat(">", 28), overflow: true},
		{name: "30 round wraps", completion: strings.Repeat(")", 30), overflow: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ScoreCompletion(tt.completion)
			if tt.overflow {
				assert.ErrorIs(t, err, ErrScoreOverflow)
				assert.Equal(t, int64(0), got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, got, int64(math.MaxInt64))
		})
	}
}

func TestCalculateScorePanicsOnOverflow(t *testing.T) {
	assert.Panics(t, func() { CalculateScore(strings.Repeat(")", 30)) })
}
