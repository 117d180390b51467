package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/trophykit/internal/source"
	"github.com/joshuapare/trophykit/internal/store"
	"github.com/joshuapare/trophykit/pkg/trophy"
)

var (
	scanSnapshot       string
	scanNoSnapshot     bool
	scanNoFingerprints bool
	scanWorkers        int
	scanIdentity       string
)

func init() {
	cmd := newScanCmd()
	cmd.Flags().StringVar(&scanSnapshot, "snapshot", "", "Profile snapshot file (overrides config)")
	cmd.Flags().BoolVar(&scanNoSnapshot, "no-snapshot", false, "Do not load or save a snapshot")
	cmd.Flags().BoolVar(&scanNoFingerprints, "no-fingerprints", false, "Decode every game even if unchanged")
	cmd.Flags().IntVarP(&scanWorkers, "workers", "w", 0, "Concurrent decoders (0 = config or GOMAXPROCS)")
	cmd.Flags().StringVar(&scanIdentity, "identity", "", "YAML file with user_name (overrides config)")
	rootCmd.AddCommand(cmd)
}

func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan [root]",
		Short: "Decode every game under a trophy directory and refresh the profile",
		Long: `The scan command decodes every game directory under root, merges the
results into the saved profile and prints a summary. A game that fails to
decode is reported and does not stop the scan.

Example:
  trophyctl scan /data/trophy
  trophyctl scan --config trophyctl.yaml
  trophyctl scan /data/trophy --no-snapshot --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd.Context(), args)
		},
	}
}

type scanOutput struct {
	ProfileID string             `json:"profile_id"`
	UserName  string             `json:"user_name,omitempty"`
	Summary   trophy.Summary     `json:"summary"`
	Result    *trophy.ScanResult `json:"result"`
	Snapshot  string             `json:"snapshot,omitempty"`
}

func runScan(ctx context.Context, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	root := cfg.TrophyDir
	if len(args) == 1 {
		root = args[0]
	}
	if root == "" {
		return errors.New("no trophy directory: pass <root> or set trophy_dir in the config")
	}

	snapshot := cfg.Snapshot
	if scanSnapshot != "" {
		snapshot = scanSnapshot
	}
	if scanNoSnapshot {
		snapshot = ""
	}
	identity := cfg.IdentityFile
	if scanIdentity != "" {
		identity = scanIdentity
	}
	workers := cfg.Workers
	if scanWorkers > 0 {
		workers = scanWorkers
	}

	var (
		st      *store.Store
		profile = trophy.NewProfile("")
		prints  = store.NewFingerprints()
		err     error
	)
	if snapshot != "" {
		st = store.Open(snapshot)
		if profile, prints, err = st.Load(""); err != nil {
			return err
		}
		printVerbose("Loaded profile %s from %s\n", profile.ID(), snapshot)
	}

	opts := trophy.Options{Logger: logger, Workers: workers}
	if cfg.Fingerprints && !scanNoFingerprints {
		opts.Fingerprints = prints
	}
	dir := source.NewDir(root)
	scanner := trophy.NewScanner(dir, dir, opts)
	if identity != "" {
		scanner.WithIdentity(source.IdentityFile{Path: identity})
	}

	printVerbose("Scanning %s\n", root)
	res, err := scanner.Scan(ctx, profile)
	if err != nil {
		return fmt.Errorf("scan %s: %w", root, err)
	}

	if st != nil {
		if err := st.Save(profile, prints); err != nil {
			return err
		}
		printVerbose("Saved profile to %s\n", snapshot)
	}

	out := scanOutput{
		ProfileID: profile.ID().String(),
		UserName:  profile.UserName(),
		Summary:   profile.Summary(),
		Result:    res,
		Snapshot:  snapshot,
	}
	if jsonOut {
		return printJSON(out)
	}
	printScan(out)
	return nil
}

func printScan(out scanOutput) {
	res := out.Result
	for _, g := range res.Games {
		printInfo("  %-14s %-30s +%d new, %d updated, %d newly unlocked\n",
			g.NpCommID, g.Title, g.Merge.Added, g.Merge.Updated, g.Merge.NewlyUnlocked)
		if g.Diagnostics.Len() > 0 {
			printVerbose("%s", g.Diagnostics.FormatTextCompact())
		}
	}
	for _, id := range res.Unchanged {
		printVerbose("  %-14s unchanged\n", id)
	}
	for _, f := range res.Failures {
		printInfo("  %-14s FAILED: %v\n", f.NpCommID, f.Err)
	}

	s := out.Summary
	printInfo("\nProfile")
	if out.UserName != "" {
		printInfo(" %s", out.UserName)
	}
	printInfo(" (%s)\n", out.ProfileID)
	printInfo("  Games: %d  Decoded: %d  Unchanged: %d  Failed: %d\n",
		s.Games, len(res.Games), len(res.Unchanged), len(res.Failures))
	printInfo("  Trophies: %d/%d\n", s.Unlocked, s.Total)
	printInfo("  Points: %d  Level: %d (%d%%)\n", s.Points, s.Level, s.Percent)
}
