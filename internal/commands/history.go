package commands

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/ryukyi/syntaxscore/internal/app"
	"github.com/ryukyi/syntaxscore/internal/history"
	"github.com/ryukyi/syntaxscore/internal/ulid"
	"github.com/ryukyi/syntaxscore/internal/utils"
)

const historyLineWidth = 40

// HistoryCommand returns the CLI command for browsing recorded runs
func HistoryCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Browse previously recorded check runs",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List recent runs, newest first",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of runs to show (default: SYNTAXSCORE_HISTORY_LIMIT)",
					},
				},
				Action: listRuns,
			},
			{
				Name:      "show",
				Usage:     "Show a run and its lines",
				ArgsUsage: "RUN_ID",
				Action:    showRun,
			},
			{
				Name:      "delete",
				Usage:     "Delete a run from history",
				ArgsUsage: "RUN_ID",
				Action:    deleteRun,
			},
		},
	}
}

func historyService(c *cli.Context) (*history.Service, error) {
	application, err := app.FromContext(c)
	if err != nil {
		return nil, err
	}
	return application.RequireHistory()
}

func runIDArg(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", fmt.Errorf("expected exactly one RUN_ID argument")
	}
	id := c.Args().First()
	if !ulid.Validate(id) {
		utils.PrintError(fmt.Sprintf("Not a run ID: %s", color.YellowString("%s", id)))
		return "", fmt.Errorf("%w %q", history.ErrInvalidRunID, id)
	}
	return id, nil
}

func listRuns(c *cli.Context) error {
	application, err := app.FromContext(c)
	if err != nil {
		return err
	}
	service, err := application.RequireHistory()
	if err != nil {
		return err
	}

	limit := c.Int("limit")
	if limit <= 0 {
		limit = application.Config.History.Limit
	}

	runs, err := service.ListRuns(c.Context, limit)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			run.ID.String(),
			run.Name,
			run.Source,
			strconv.Itoa(run.LineCount),
			strconv.Itoa(run.CorruptedCount),
			medianCell(run),
			run.CreatedAt.Local().Format(time.DateTime),
		})
	}

	utils.PrintTable("Recent runs", []string{"ID", "Name", "Source", "Lines", "Corrupted", "Median", "Created"}, rows)
	return nil
}

func showRun(c *cli.Context) error {
	id, err := runIDArg(c)
	if err != nil {
		return err
	}
	service, err := historyService(c)
	if err != nil {
		return err
	}

	run, err := service.GetRun(c.Context, id)
	if err != nil {
		if errors.Is(err, history.ErrRunNotFound) {
			utils.PrintError(fmt.Sprintf("No run with ID %s", color.YellowString("%s", id)))
		}
		return err
	}

	utils.PrintHeading(run.Name)
	utils.PrintKeyValue("ID", run.ID.String())
	utils.PrintKeyValue("Source", run.Source)
	utils.PrintKeyValue("Created", run.CreatedAt.Local().Format(time.DateTime))
	utils.PrintKeyValue("Lines", fmt.Sprintf("%d (%d corrupted, %d incomplete)", run.LineCount, run.CorruptedCount, run.IncompleteCount))
	utils.PrintKeyValue("Syntax error score", strconv.FormatInt(run.SyntaxErrorScore, 10))
	utils.PrintKeyValue("Middle score", medianCell(run))
	if run.EvenScoreCount {
		utils.PrintWarning("Even number of scores, middle score is the upper median")
	}

	rows := make([][]string, 0, len(run.Lines))
	for _, l := range run.Lines {
		detail := l.Message
		if detail == "" && l.Completion != "" {
			detail = "complete by adding " + l.Completion
		}
		rows = append(rows, []string{
			strconv.Itoa(l.Index + 1),
			utils.Ellipsize(l.Content, historyLineWidth),
			string(l.Status),
			detail,
			strconv.FormatInt(l.Score, 10),
		})
	}
	utils.PrintTable("Lines", []string{"#", "Line", "Status", "Detail", "Score"}, rows)
	return nil
}

func deleteRun(c *cli.Context) error {
	id, err := runIDArg(c)
	if err != nil {
		return err
	}
	service, err := historyService(c)
	if err != nil {
		return err
	}

	if err := service.DeleteRun(c.Context, id); err != nil {
		if errors.Is(err, history.ErrRunNotFound) {
			utils.PrintError(fmt.Sprintf("No run with ID %s", color.YellowString("%s", id)))
		}
		return err
	}

	utils.PrintSuccess("Deleted run " + color.YellowString("%s", id))
	return nil
}

func medianCell(run *history.Run) string {
	if run.MedianScore == nil {
		return "n/a"
	}
	return strconv.FormatInt(*run.MedianScore, 10)
}
