// Package utils holds small terminal and naming helpers shared by the commands
package utils

import (
	"strings"
	"time"

	"github.com/goombaio/namegenerator"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
)

// GenerateRunName creates a random, memorable run name such as "wispy-dust"
func GenerateRunName() string {
	seed := time.Now().UTC().UnixNano()
	nameGenerator := namegenerator.NewNameGenerator(seed)

	// Some names might have underscores; convert to hyphens for consistency
	return strings.ReplaceAll(nameGenerator.Generate(), "_", "-")
}

// Ellipsize shortens s to at most width printable cells, ending in "…" when cut
func Ellipsize(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.PrintableRuneWidth(s) <= width {
		return s
	}
	return truncate.StringWithTail(s, uint(width), "…")
}
