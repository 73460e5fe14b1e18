package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/ryukyi/syntaxscore/internal/app"
	"github.com/ryukyi/syntaxscore/internal/commands"
)

// Version information - populated at build time
var (
	Version    = "dev"
	BuildTime  = "unknown"
	CommitHash = "unknown"
	Author     = "unknown"
	Email      = "unknown"
)

func main() {
	cliApp := &cli.App{
		Name:  "syntaxscore",
		Usage: "Find corrupted bracket lines and score the completions of incomplete ones",
		Description: "syntaxscore reads lines made of ()[]{}<> and reports which are corrupted " +
			"and which are incomplete, then prints the middle completion score.\n\n" +
			"When run without subcommands, syntaxscore checks its input (default action).\n" +
			"Additional subcommands score completions directly and browse recorded runs.",
		Version: fmt.Sprintf("%s (commit %s)", Version, CommitHash),
		Compiled: func() time.Time {
			t, err := time.Parse(time.RFC3339, BuildTime)
			if err != nil {
				return time.Now()
			}
			return t
		}(),
		Authors: []*cli.Author{
			{
				Name:  Author,
				Email: Email,
			},
		},
		ArgsUsage: "[FILE]",
		Flags:     commands.CheckFlags(),
		Before: func(c *cli.Context) error {
			application, err := app.New()
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}

			c.App.Metadata = map[string]interface{}{
				"app": application,
			}

			return nil
		},
		After: func(c *cli.Context) error {
			if application, ok := c.App.Metadata["app"].(*app.App); ok {
				return application.Shutdown()
			}
			return nil
		},
		Commands: []*cli.Command{
			commands.CheckCommand(),
			commands.ScoreCommand(),
			commands.HistoryCommand(),
			commands.InitCommand(),
			commands.MigrateCommand(),
		},
		Action: func(c *cli.Context) error {
			return commands.CheckCommand().Action(c)
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
