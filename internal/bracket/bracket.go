// Package bracket classifies the four canonical bracket pairs
package bracket

import "fmt"

// Kind identifies one of the four bracket pairs
type Kind int

const (
	Round  Kind = iota // ()
	Square             // []
	Curly              // {}
	Angle              // <>
)

// Kinds lists every bracket kind in declaration order
var Kinds = []Kind{Round, Square, Curly, Angle}

var pairs = [...]struct {
	name    string
	opening rune
	closing rune
}{
	Round:  {"round", '(', ')'},
	Square: {"square", '[', ']'},
	Curly:  {"curly", '{', '}'},
	Angle:  {"angle", '<', '>'},
}

// Valid reports whether k is one of the four declared kinds
func (k Kind) Valid() bool {
	return k >= Round && k <= Angle
}

// Opening returns the opening character of the pair
func (k Kind) Opening() rune {
	if !k.Valid() {
		panic(fmt.Sprintf("bracket: invalid kind %d", int(k)))
	}
	return pairs[k].opening
}

// Closing returns the closing character of the pair
func (k Kind) Closing() rune {
	if !k.Valid() {
		panic(fmt.Sprintf("bracket: invalid kind %d", int(k)))
	}
	return pairs[k].closing
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return pairs[k].name
}

// FromOpening returns the kind opened by ch
func FromOpening(ch rune) (Kind, bool) {
	switch ch {
	case '(':
		return Round, true
	case '[':
		return Square, true
	case '{':
		return Curly, true
	case '<':
		return Angle, true
	}
	return 0, false
}

// FromClosing returns the kind closed by ch
func FromClosing(ch rune) (Kind, bool) {
	switch ch {
	case ')':
		return Round, true
	case ']':
		return Square, true
	case '}':
		return Curly, true
	case '>':
		return Angle, true
	}
	return 0, false
}

// IsOpening reports whether ch opens a bracket pair
func IsOpening(ch rune) bool {
	_, ok := FromOpening(ch)
	return ok
}

// IsClosing reports whether ch closes a bracket pair
func IsClosing(ch rune) bool {
	_, ok := FromClosing(ch)
	return ok
}
