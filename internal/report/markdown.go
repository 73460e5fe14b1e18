package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/ryukyi/syntaxscore/internal/checker"
)

// MarkdownWrap is the word wrap width used for terminal rendering
const MarkdownWrap = 100

// BuildMarkdown returns the report as a markdown document
func BuildMarkdown(rep *checker.Report) string {
	var sb strings.Builder

	title := "Syntax check"
	if rep.Name != "" {
		title += ": " + rep.Name
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)

	fmt.Fprintf(&sb, "- **Source:** %s\n", rep.Source)
	fmt.Fprintf(&sb, "- **Lines:** %d (%d corrupted, %d incomplete)\n", len(rep.Lines), rep.CorruptedCount(), rep.IncompleteCount())
	fmt.Fprintf(&sb, "- **Syntax error score:** %d\n", rep.SyntaxErrorScore)
	fmt.Fprintf(&sb, "- **Middle score:** %s\n\n", medianText(rep))

	sb.WriteString("| # | Line | Status | Detail | Score |\n")
	sb.WriteString("|---:|---|---|---|---:|\n")
	for _, l := range rep.Lines {
		score := "-"
		if l.Scored() {
			score = fmt.Sprintf("%d", l.Score)
		}
		fmt.Fprintf(&sb, "| %d | %s | %s | %s | %s |\n", l.Index+1, codeSpan(l.Line), l.Status, codeSpan(detail(l)), score)
	}
	return sb.String()
}

var codeSpanEscaper = strings.NewReplacer("`", "'", "|", `\|`)

// codeSpan keeps bracket runs from being read as links or HTML, and pipes
// from splitting the table cell
func codeSpan(s string) string {
	if s == "" {
		return ""
	}
	return "`" + codeSpanEscaper.Replace(s) + "`"
}

// RenderMarkdown renders the markdown document for the terminal through glamour
func RenderMarkdown(w io.Writer, rep *checker.Report) error {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(MarkdownWrap),
	)
	if err != nil {
		return fmt.Errorf("creating markdown renderer: %w", err)
	}

	out, err := renderer.Render(BuildMarkdown(rep))
	if err != nil {
		return fmt.Errorf("rendering markdown: %w", err)
	}

	_, err = io.WriteString(w, out)
	return err
}
