// Package commands implements the syntaxscore CLI commands
package commands

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/ryukyi/syntaxscore/internal/app"
	"github.com/ryukyi/syntaxscore/internal/config"
	"github.com/ryukyi/syntaxscore/internal/input"
	"github.com/ryukyi/syntaxscore/internal/loggy"
	"github.com/ryukyi/syntaxscore/internal/report"
)

// CheckFlags returns the flags accepted by the check command and the default action
func CheckFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format: plain, table, markdown or json (default: SYNTAXSCORE_OUTPUT_FORMAT or plain)",
		},
		&cli.BoolFlag{
			Name:  "example",
			Usage: "Check the built-in example lines",
		},
		&cli.BoolFlag{
			Name:  "stdin",
			Usage: "Read lines from standard input",
		},
		&cli.IntFlag{
			Name:    "workers",
			Aliases: []string{"w"},
			Usage:   "Number of lines checked concurrently",
		},
		&cli.BoolFlag{
			Name:  "no-history",
			Usage: "Do not record this run in the history database",
		},
		&cli.BoolFlag{
			Name:  "strict-median",
			Usage: "Fail when the number of scored lines is even",
		},
	}
}

// CheckCommand returns the CLI command for checking bracket lines
func CheckCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Check bracket lines and report the middle completion score",
		ArgsUsage: "[FILE]",
		Description: "Reads one chunk per line, reports corrupted lines with the offending bracket " +
			"and scores the completions of incomplete lines. FILE defaults to SYNTAXSCORE_INPUT_PATH; " +
			"without either the built-in example is checked. Use - for standard input.",
		Flags:  CheckFlags(),
		Action: runCheck,
	}
}

func runCheck(c *cli.Context) error {
	application, err := app.FromContext(c)
	if err != nil {
		return err
	}
	cfg := application.Config

	if c.IsSet("workers") {
		cfg.Analysis.Workers = c.Int("workers")
	}
	if c.IsSet("strict-median") {
		cfg.Analysis.StrictMedian = c.Bool("strict-median")
	}

	formatName := c.String("format")
	if formatName == "" {
		formatName = cfg.Analysis.OutputFormat
	}
	if formatName == "" {
		formatName = config.FormatPlain
	}
	format, err := report.ParseFormat(formatName)
	if err != nil {
		return err
	}

	src, err := resolveSource(c, cfg)
	if err != nil {
		return err
	}

	rep, err := application.Checker.Analyze(c.Context, src)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", src.Name(), err)
	}

	if !c.Bool("no-history") && application.History != nil {
		if _, err := application.History.Record(c.Context, rep); err != nil {
			loggy.Warn("Failed to record run", "run_id", rep.RunID, "error", err)
		}
	}

	return report.Render(c.App.Writer, rep, format)
}

// resolveSource picks the line source from flags, the FILE argument and configuration
func resolveSource(c *cli.Context, cfg *config.Config) (input.LineSource, error) {
	if c.Bool("example") && c.Bool("stdin") {
		return nil, fmt.Errorf("--example and --stdin cannot be combined")
	}
	if c.NArg() > 1 {
		return nil, fmt.Errorf("expected at most one FILE argument, got %d", c.NArg())
	}

	path := c.Args().First()
	switch {
	case c.Bool("example"):
		return input.ExampleSource(), nil
	case c.Bool("stdin"), path == "-":
		return input.NewReaderSource("stdin", c.App.Reader), nil
	case path != "":
		return input.NewFileSource(path), nil
	case cfg.Input.Path != "":
		return input.NewFileSource(cfg.Input.Path), nil
	default:
		return input.ExampleSource(), nil
	}
}
