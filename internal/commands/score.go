package commands

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/ryukyi/syntaxscore/internal/bracket"
	"github.com/ryukyi/syntaxscore/internal/checker"
)

// ScoreCommand returns the CLI command for scoring completion strings directly
func ScoreCommand() *cli.Command {
	return &cli.Command{
		Name:      "score",
		Usage:     "Print the completion score of each argument",
		ArgsUsage: "COMPLETION...",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("at least one completion string is required")
			}

			for _, completion := range c.Args().Slice() {
				if err := validateCompletion(completion); err != nil {
					return err
				}
				score, err := checker.ScoreCompletion(completion)
				if err != nil {
					return fmt.Errorf("scoring %q: %w", completion, err)
				}
				fmt.Fprintf(c.App.Writer, "%s %d\n", completion, score)
			}
			return nil
		},
	}
}

// validateCompletion rejects input ScoreCompletion would panic on
func validateCompletion(completion string) error {
	for i, ch := range []rune(completion) {
		if !bracket.IsClosing(ch) {
			return fmt.Errorf("invalid completion %q: %q at position %d is not a closing bracket", completion, ch, i)
		}
	}
	return nil
}
