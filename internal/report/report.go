// Package report renders checker reports for terminals and pipes
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ryukyi/syntaxscore/internal/checker"
	"github.com/ryukyi/syntaxscore/internal/config"
)

// Format selects a renderer
type Format string

const (
	FormatPlain    Format = config.FormatPlain
	FormatTable    Format = config.FormatTable
	FormatMarkdown Format = config.FormatMarkdown
	FormatJSON     Format = config.FormatJSON
)

// ParseFormat validates a format name
func ParseFormat(name string) (Format, error) {
	if !config.IsValidFormat(name) {
		return "", fmt.Errorf("unknown report format %q (want plain, table, markdown or json)", name)
	}
	return Format(strings.ToLower(name)), nil
}

// Render writes rep to w in the requested format
func Render(w io.Writer, rep *checker.Report, format Format) error {
	switch format {
	case FormatPlain, "":
		return RenderPlain(w, rep)
	case FormatTable:
		return RenderTable(w, rep)
	case FormatMarkdown:
		return RenderMarkdown(w, rep)
	case FormatJSON:
		return RenderJSON(w, rep)
	}
	return fmt.Errorf("unknown report format %q", format)
}

// RenderPlain writes the echo of all lines, one message per corrupted line,
// the sorted scores and the labeled median
func RenderPlain(w io.Writer, rep *checker.Report) error {
	quoted := make([]string, len(rep.Lines))
	for i, l := range rep.Lines {
		quoted[i] = strconv.Quote(l.Line)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "lines: [%s]\n", strings.Join(quoted, ", "))
	for _, msg := range rep.Messages() {
		sb.WriteString(msg)
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "%s\n", formatScores(rep.Scores))
	fmt.Fprintf(&sb, "Middle score: %s\n", medianText(rep))

	_, err := io.WriteString(w, sb.String())
	return err
}

// RenderJSON writes the report as indented JSON
func RenderJSON(w io.Writer, rep *checker.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}

func formatScores(scores []int64) string {
	parts := make([]string, len(scores))
	for i, s := range scores {
		parts[i] = strconv.FormatInt(s, 10)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func medianText(rep *checker.Report) string {
	if !rep.HasMedian {
		return "n/a"
	}
	return strconv.FormatInt(rep.Median, 10)
}

func detail(l checker.LineResult) string {
	switch l.Status {
	case checker.StatusCorrupted:
		return l.Message
	case checker.StatusIncomplete:
		if l.ScoreErr != nil {
			return l.Message
		}
		return "complete by adding " + l.Completion
	}
	return "balanced"
}
