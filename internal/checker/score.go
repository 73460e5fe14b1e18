package checker

import (
	"fmt"
	"math"
	"slices"
	"unicode/utf8"
)

// MaxScoredCompletion is the longest completion whose score always fits in an int64
const MaxScoredCompletion = 27

// ScoreCompletion accumulates the base-5 completion score of a completion string.
// It returns ErrScoreOverflow when the score does not fit in an int64.
// Characters other than the four closing brackets violate the completion
// invariant and panic.
func ScoreCompletion(completion string) (int64, error) {
	var score int64
	for _, ch := range completion {
		points := completionPoints(ch)
		if score > (math.MaxInt64-points)/5 {
			return 0, fmt.Errorf("%w: %d closing brackets", ErrScoreOverflow, utf8.RuneCountInString(completion))
		}
		score = score*5 + points
	}
	return score, nil
}

// CalculateScore is ScoreCompletion for completions known to fit. It panics on overflow.
func CalculateScore(completion string) int64 {
	score, err := ScoreCompletion(completion)
	if err != nil {
		panic(err)
	}
	return score
}

func completionPoints(ch rune) int64 {
	switch ch {
	case ')':
		return 1
	case ']':
		return 2
	case '}':
		return 3
	case '>':
		return 4
	}
	panic(fmt.Sprintf("unexpected character %q in completion string", ch))
}

// SyntaxErrorPoints returns the penalty for an illegal closing character
func SyntaxErrorPoints(ch rune) int64 {
	switch ch {
	case ')':
		return 3
	case ']':
		return 57
	case '}':
		return 1197
	case '>':
		return 25137
	}
	panic(fmt.Sprintf("unexpected illegal character %q", ch))
}

// MedianScore sorts a copy of scores and returns the element at len/2.
// For an even count this is the upper of the two central values; use
// IsEvenCount to detect that case.
func MedianScore(scores []int64) (int64, error) {
	if len(scores) == 0 {
		return 0, ErrNoScores
	}
	sorted := slices.Clone(scores)
	slices.Sort(sorted)
	return sorted[len(sorted)/2], nil
}

// IsEvenCount reports whether the score collection lacks a single middle element
func IsEvenCount(scores []int64) bool {
	return len(scores) > 0 && len(scores)%2 == 0
}
