package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/joshuapare/trophykit/pkg/trophy"
)

func init() {
	rootCmd.AddCommand(newLevelCmd())
}

func newLevelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "level <points>",
		Short: "Show the level reached with a number of points",
		Long: `The level command maps cumulative trophy points to a level and the
progress towards the next one.

Example:
  trophyctl level 2500
  trophyctl level 76000 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLevel(args)
		},
	}
}

type levelOutput struct {
	Points   int `json:"points"`
	Level    int `json:"level"`
	Progress int `json:"progress"`
}

func runLevel(args []string) error {
	points, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid points %q: %w", args[0], err)
	}
	level, pct := trophy.LevelProgressFor(points)

	if jsonOut {
		return printJSON(levelOutput{Points: points, Level: level, Progress: pct})
	}
	printInfo("Level %d (%d%% to next)\n", level, pct)
	return nil
}
