package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/ryukyi/syntaxscore/internal/config"
	"github.com/ryukyi/syntaxscore/internal/database"
	"github.com/ryukyi/syntaxscore/internal/utils"
)

// InitCommand returns the CLI command for initializing syntaxscore
func InitCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Initialize or update the syntaxscore environment",
		Description: "Creates the configuration directory, writes a default .env file " +
			"and prepares the run history database. Run it again after upgrading " +
			"to apply new database migrations.",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite an existing .env file, keeping a dated backup",
			},
		},
		Action: func(c *cli.Context) error {
			utils.PrintHeading("Initializing syntaxscore")

			configDir, err := config.DefaultDir()
			if err != nil {
				utils.PrintError(fmt.Sprintf("Failed to resolve config directory: %s", err))
				return err
			}
			utils.PrintInfo("Configuration directory: " + color.YellowString("%s", configDir))

			envPath, err := config.SetupConfigDirectory(configDir, c.Bool("force"))
			if err != nil {
				// The defaults still work without a .env file
				utils.PrintWarning(fmt.Sprintf("Failed to set up configuration files: %s", err))
			}

			cfg, err := config.LoadFromEnv(configDir, envPath)
			if err != nil {
				utils.PrintError(fmt.Sprintf("Failed to load configuration: %s", err))
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			// The connection opened at start-up predates the .env written above
			if err := database.CloseDB(); err != nil {
				utils.PrintWarning(fmt.Sprintf("Failed to close existing database connection: %s", err))
			}

			utils.PrintInfo("Initializing database...")
			if err := database.InitDB(cfg); err != nil {
				utils.PrintError(fmt.Sprintf("Failed to initialize database: %s", err))
				return fmt.Errorf("failed to initialize database: %w", err)
			}

			utils.PrintInfo("Applying database migrations...")
			applied, err := database.RunMigrations()
			if err != nil {
				utils.PrintError(fmt.Sprintf("Failed to apply migrations: %s", err))
				return fmt.Errorf("failed to apply migrations: %w", err)
			}

			utils.PrintSuccess("syntaxscore initialized successfully!")
			if applied > 0 {
				utils.PrintSuccess(fmt.Sprintf("Applied %d new migration(s)", applied))
			} else {
				utils.PrintInfo("Database schema is already up-to-date")
			}

			utils.PrintInfo("Configuration file: " + color.YellowString("%s", envPath))
			utils.PrintInfo("Database location: " + color.YellowString("%s", cfg.Database.Path))
			utils.PrintInfo("Log file location: " + color.YellowString("%s", cfg.Logging.Output))
			fmt.Fprintln(utils.Output)
			utils.PrintInfo("Run " + color.CyanString("syntaxscore check FILE") + " to score a file.")

			return nil
		},
	}
}
