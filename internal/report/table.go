package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/ryukyi/syntaxscore/internal/checker"
	"github.com/ryukyi/syntaxscore/internal/utils"
)

// LineWidth caps how much of each input line the table shows
const LineWidth = 40

var (
	corruptedColor  = color.New(color.FgRed, color.Bold).SprintFunc()
	incompleteColor = color.New(color.FgYellow).SprintFunc()
	completeColor   = color.New(color.FgGreen).SprintFunc()

	summaryStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("6")).
			Padding(0, 1)
)

func statusText(s checker.Status) string {
	switch s {
	case checker.StatusCorrupted:
		return corruptedColor(string(s))
	case checker.StatusIncomplete:
		return incompleteColor(string(s))
	}
	return completeColor(string(s))
}

// RenderTable writes one table row per line followed by a summary box
func RenderTable(w io.Writer, rep *checker.Report) error {
	title := "syntaxscore"
	if rep.Name != "" {
		title += " · " + rep.Name
	}

	t := utils.NewTable(w, title)
	t.AppendHeader(table.Row{"#", "Line", "Status", "Detail", "Score"})
	for _, l := range rep.Lines {
		score := ""
		if l.Scored() {
			score = strconv.FormatInt(l.Score, 10)
		}
		t.AppendRow(table.Row{
			l.Index + 1,
			utils.Ellipsize(l.Line, LineWidth),
			statusText(l.Status),
			detail(l),
			score,
		})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	t.Render()

	_, err := fmt.Fprintln(w, summaryStyle.Render(summary(rep)))
	return err
}

func summary(rep *checker.Report) string {
	rows := [][2]string{
		{"Source", rep.Source},
		{"Lines", strconv.Itoa(len(rep.Lines))},
		{"Corrupted", strconv.Itoa(rep.CorruptedCount())},
		{"Incomplete", strconv.Itoa(rep.IncompleteCount())},
		{"Syntax error score", strconv.FormatInt(rep.SyntaxErrorScore, 10)},
		{"Middle score", medianText(rep)},
	}

	var sb strings.Builder
	for i, r := range rows {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%-19s %s", r[0]+":", r[1])
	}
	if rep.EvenScoreCount {
		sb.WriteString("\n(even score count: middle taken at len/2)")
	}
	if rep.UnscoredCount > 0 {
		fmt.Fprintf(&sb, "\n(%d line(s) nested too deeply to score)", rep.UnscoredCount)
	}
	return sb.String()
}
