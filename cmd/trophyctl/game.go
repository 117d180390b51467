package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/joshuapare/trophykit/internal/source"
	"github.com/joshuapare/trophykit/pkg/trophy"
	"github.com/joshuapare/trophykit/pkg/types"
)

var (
	gameID         string
	gameShowHidden bool
)

func init() {
	cmd := newGameCmd()
	cmd.Flags().StringVar(&gameID, "id", "", "Game id (default: directory name)")
	cmd.Flags().BoolVar(&gameShowHidden, "show-hidden", false, "Show names of hidden locked trophies")
	rootCmd.AddCommand(cmd)
}

func newGameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "game <dir>",
		Short: "Decode one game directory and list its trophies",
		Long: `The game command reads TROPUSR.DAT and TROPCONF.SFM from one game
directory, reconciles them and lists every trophy with its unlock state.

Example:
  trophyctl game /data/trophy/NPWR00001_00
  trophyctl game ./backup --id NPWR00001_00 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGame(args)
		},
	}
}

type gameOutput struct {
	Game        *trophy.Game            `json:"game"`
	Score       int                     `json:"score"`
	Progress    trophy.Progress         `json:"progress"`
	Diagnostics *types.DiagnosticReport `json:"diagnostics"`
}

func runGame(args []string) error {
	dir := args[0]
	id := gameID
	if id == "" {
		id = filepath.Base(filepath.Clean(dir))
	}
	printVerbose("Reading game %s from %s\n", id, dir)

	files, err := source.ReadGameDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", dir, err)
	}
	game, report, err := trophy.DecodeGame(id, files.Progress, files.Descriptor, trophy.Options{Logger: logger})
	if err != nil {
		if report.Len() > 0 && !quiet {
			printError("%s", report.FormatTextCompact())
		}
		return fmt.Errorf("failed to decode %s: %w", id, err)
	}

	out := gameOutput{Game: game, Score: game.Score(), Progress: game.Progress(), Diagnostics: report}
	if jsonOut {
		return printJSON(out)
	}
	printGame(out)
	return nil
}

func printGame(out gameOutput) {
	g := out.Game
	printInfo("\n%s (%s)\n", g.Title, g.NpCommID)
	if g.Detail != "" {
		printVerbose("  %s\n", g.Detail)
	}
	printInfo("  Version: %s  Parental level: %d\n", g.Version, g.ParentalLevel)
	printInfo("  Unlocked: %d/%d (%d%%)  Score: %d\n\n",
		out.Progress.Unlocked, out.Progress.Total, out.Progress.Percent(), out.Score)

	for _, t := range g.Trophies {
		mark := " "
		if t.Unlocked {
			mark = "x"
		}
		name := t.Name
		if t.Hidden && !t.Unlocked && !gameShowHidden {
			name = "(hidden)"
		}
		when := ""
		if t.UnlockedAt != nil {
			when = "  " + t.UnlockedAt.Format(time.RFC3339)
		}
		printInfo("  [%s] %3d %-8s %s%s\n", mark, t.ID, t.Grade, name, when)
	}

	if out.Diagnostics.Len() > 0 {
		printInfo("\nDiagnostics:\n%s", out.Diagnostics.FormatTextCompact())
	}
}
