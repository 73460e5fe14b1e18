package utils

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Output is where the Print helpers write; tests swap it for a buffer
var Output io.Writer = os.Stdout

// Gruvbox-inspired palette used only within this file
var (
	gruvboxFgDark  = text.Colors{text.FgHiBlack}
	gruvboxFgLight = text.Colors{text.FgWhite}
	gruvboxRed     = text.Colors{text.FgRed}
	gruvboxGreen   = text.Colors{text.FgGreen}
	gruvboxYellow  = text.Colors{text.FgYellow}
	gruvboxBlue    = text.Colors{text.FgBlue}

	gruvboxBlueBright   = text.Colors{text.FgHiBlue}
	gruvboxAquaBright   = text.Colors{text.FgHiCyan}

	gruvboxBold = text.Colors{text.Bold}
)

// Theme - exported theme colors for consistent UI
var Theme = struct {
	Success text.Colors
	Info    text.Colors
	Warning text.Colors
	Error   text.Colors
	Heading text.Colors
	Subtle  text.Colors

	Title       text.Colors
	TableHeader text.Colors
	TableBorder text.Colors
	TableRow    text.Colors
	TableAltRow text.Colors
}{
	Success: gruvboxGreen,
	Info:    gruvboxBlue,
	Warning: gruvboxYellow,
	Error:   gruvboxRed,
	Heading: append(text.Colors{}, append(gruvboxAquaBright, text.Bold)...),
	Subtle:  gruvboxFgDark,

	Title:       append(text.Colors{}, append(gruvboxAquaBright, text.Bold)...),
	TableHeader: append(text.Colors{}, append(gruvboxBlueBright, text.Bold)...),
	TableBorder: gruvboxBlue,
	TableRow:    gruvboxFgLight,
	TableAltRow: text.Colors{text.FgWhite, text.Faint},
}

// PrintHeading prints a formatted heading
func PrintHeading(title string) {
	fmt.Fprintln(Output, Theme.Heading.Sprint(title))
}

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	fmt.Fprintln(Output, Theme.Success.Sprint("✓ ")+message)
}

// PrintInfo prints an info message
func PrintInfo(message string) {
	fmt.Fprintln(Output, Theme.Info.Sprint("ℹ ")+message)
}

// PrintWarning prints a warning message
func PrintWarning(message string) {
	fmt.Fprintln(Output, Theme.Warning.Sprint("⚠ ")+message)
}

// PrintError prints an error message
func PrintError(message string) {
	fmt.Fprintln(Output, Theme.Error.Sprint("✗ ")+message)
}

// PrintKeyValue prints a key-value pair
func PrintKeyValue(key, value string) {
	fmt.Fprintf(Output, "%s: %s\n", gruvboxBold.Sprint(key), value)
}

// NewTable creates a table writing to w with the Gruvbox style
func NewTable(w io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)

	if title != "" {
		t.SetTitle(title)
	}

	customStyle := table.StyleDouble
	customStyle.Color.Header = Theme.TableHeader
	customStyle.Color.Border = Theme.TableBorder
	customStyle.Color.Row = Theme.TableRow
	customStyle.Color.RowAlternate = Theme.TableAltRow
	customStyle.Title.Colors = Theme.Title
	customStyle.Title.Align = text.AlignCenter

	customStyle.Options.DrawBorder = true
	customStyle.Options.SeparateColumns = true
	customStyle.Options.SeparateFooter = true
	customStyle.Options.SeparateHeader = true
	customStyle.Options.SeparateRows = false

	customStyle.Box.PaddingLeft = " "
	customStyle.Box.PaddingRight = " "

	t.SetStyle(customStyle)
	return t
}

// PrintTable prints a table with headers and rows to Output
func PrintTable(title string, headers []string, rows [][]string) {
	t := NewTable(Output, title)

	headerRow := table.Row{}
	for _, header := range headers {
		headerRow = append(headerRow, header)
	}
	t.AppendHeader(headerRow)

	for _, row := range rows {
		tableRow := table.Row{}
		for _, cell := range row {
			tableRow = append(tableRow, cell)
		}
		t.AppendRow(tableRow)
	}

	configs := make([]table.ColumnConfig, 0, len(headers))
	for i := range headers {
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       text.AlignLeft,
			AlignHeader: text.AlignCenter,
		})
	}
	t.SetColumnConfigs(configs)

	t.Render()

	if len(rows) == 0 {
		fmt.Fprintln(Output, Theme.Subtle.Sprint("No records found."))
	}
}
