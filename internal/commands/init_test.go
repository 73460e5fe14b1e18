package commands

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/ryukyi/syntaxscore/internal/config"
	"github.com/ryukyi/syntaxscore/internal/database"
	"github.com/ryukyi/syntaxscore/internal/loggy"
	"github.com/ryukyi/syntaxscore/internal/utils"
)

func TestInitReopensDatabaseFromLoadedConfig(t *testing.T) {
	text.DisableColors()
	loggy.NewNoopLogger()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("ENV_FILE_PATH", "")
	configured := filepath.Join(t.TempDir(), "configured.db")
	t.Setenv("SYNTAXSCORE_DB_PATH", configured)

	// Connection opened at start-up, before init had loaded the new configuration
	startup := config.New()
	startup.Database = config.DatabaseConfig{
		Path:        filepath.Join(t.TempDir(), "startup.db"),
		JournalMode: "WAL",
		BusyTimeout: 1000,
		ForeignKeys: true,
		ConnMaxLife: time.Minute,
		OpenRetries: 1,
	}
	require.NoError(t, database.InitDB(startup))
	t.Cleanup(func() { _ = database.CloseDB() })

	ui := &bytes.Buffer{}
	previous := utils.Output
	utils.Output = ui
	t.Cleanup(func() { utils.Output = previous })

	cliApp := &cli.App{
		Name:     "syntaxscore",
		Writer:   io.Discard,
		Commands: []*cli.Command{InitCommand()},
	}
	require.NoError(t, cliApp.Run([]string{"syntaxscore", "init"}))

	conn, err := database.DB()
	require.NoError(t, err)

	var seq int
	var name, file string
	require.NoError(t, conn.QueryRow("PRAGMA database_list").Scan(&seq, &name, &file))

	want, err := filepath.EvalSymlinks(configured)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(file)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	var tables int
	require.NoError(t, conn.QueryRow("SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = 'runs'").Scan(&tables))
	assert.Equal(t, 1, tables)

	assert.FileExists(t, filepath.Join(home, config.DefaultDirName, ".env"))
	assert.Contains(t, ui.String(), configured)
}
