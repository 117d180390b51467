package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/joshuapare/trophykit/internal/format"
	"github.com/joshuapare/trophykit/internal/reader"
	"github.com/joshuapare/trophykit/pkg/types"
)

var dumpRecords bool

func init() {
	cmd := newDumpCmd()
	cmd.Flags().BoolVar(&dumpRecords, "records", true, "List every grade and unlock record")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <TROPUSR.DAT>",
		Short: "Dump the header, table directory and records of a progress file",
		Long: `The dump command decodes a single progress file without its descriptor
and prints the table directory, every record and any diagnostics.

Example:
  trophyctl dump NPWR00001_00/TROPUSR.DAT
  trophyctl dump NPWR00001_00/TROPUSR.DAT --records=false
  trophyctl dump NPWR00001_00/TROPUSR.DAT --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	}
}

type dumpTable struct {
	Type       uint32 `json:"type"`
	EntrySize  uint32 `json:"entry_size"`
	EntryCount uint32 `json:"entry_count"`
	Offset     uint64 `json:"offset"`
	Known      bool   `json:"known"`
	Decoded    bool   `json:"decoded"`
	Error      string `json:"error,omitempty"`
}

type dumpUnlock struct {
	TrophyID   uint32     `json:"trophy_id"`
	State      uint32     `json:"state"`
	Timestamp1 uint64     `json:"timestamp1"`
	Timestamp2 uint64     `json:"timestamp2"`
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
}

type dumpGrade struct {
	TrophyID       uint32      `json:"trophy_id"`
	Code           uint32      `json:"code"`
	Grade          types.Grade `json:"grade"`
	PlatinumLinkID uint32      `json:"platinum_link_id"`
}

type dumpOutput struct {
	File        string                  `json:"file"`
	TableCount  uint32                  `json:"table_count"`
	Tables      []dumpTable             `json:"tables"`
	Grades      []dumpGrade             `json:"grades,omitempty"`
	Unlocks     []dumpUnlock            `json:"unlocks,omitempty"`
	Diagnostics *types.DiagnosticReport `json:"diagnostics"`
}

func runDump(args []string) error {
	path := args[0]
	printVerbose("Decoding progress file: %s\n", path)

	p, err := reader.OpenFile(path, reader.Options{Logger: logger})
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}

	out := dumpOutput{File: path, TableCount: p.Header.TableCount, Diagnostics: p.Diagnostics}
	for _, ts := range p.Tables {
		t := dumpTable{
			Type:       ts.Header.Type,
			EntrySize:  ts.Header.EntrySize,
			EntryCount: ts.Header.EntryCount,
			Offset:     ts.Header.Offset,
			Known:      ts.Header.Known(),
			Decoded:    ts.Decoded,
		}
		if ts.Err != nil {
			t.Error = ts.Err.Error()
		}
		out.Tables = append(out.Tables, t)
	}
	if dumpRecords {
		for _, g := range p.Grades {
			out.Grades = append(out.Grades, dumpGrade{
				TrophyID:       g.TrophyID,
				Code:           g.Grade,
				Grade:          types.GradeFromCode(g.Grade),
				PlatinumLinkID: g.PlatinumLinkID,
			})
		}
		for _, u := range p.Unlocks {
			du := dumpUnlock{TrophyID: u.TrophyID, State: u.State, Timestamp1: u.Timestamp1, Timestamp2: u.Timestamp2}
			if u.Unlocked() {
				at := u.UnlockedAt()
				du.UnlockedAt = &at
			}
			out.Unlocks = append(out.Unlocks, du)
		}
	}

	if jsonOut {
		return printJSON(out)
	}
	printDump(out)
	return nil
}

func printDump(out dumpOutput) {
	printInfo("\nProgress File: %s\n", out.File)
	printInfo("  Tables: %d\n", out.TableCount)
	for i, t := range out.Tables {
		status := "ok"
		switch {
		case !t.Known:
			status = "skipped (unknown type)"
		case !t.Decoded:
			status = "FAILED: " + t.Error
		}
		printInfo("  [%d] type=%d entries=%d size=%d offset=0x%X %s\n",
			i, t.Type, t.EntryCount, t.EntrySize, t.Offset, status)
	}

	if len(out.Grades) > 0 {
		printInfo("\nGrades:\n")
		for _, g := range out.Grades {
			link := "-"
			if g.PlatinumLinkID != format.NoPlatinumLink {
				link = fmt.Sprint(g.PlatinumLinkID)
			}
			printInfo("  %3d  %-8s link=%s\n", g.TrophyID, g.Grade, link)
		}
	}
	if len(out.Unlocks) > 0 {
		printInfo("\nUnlocks:\n")
		for _, u := range out.Unlocks {
			if u.UnlockedAt == nil {
				printInfo("  %3d  locked\n", u.TrophyID)
				continue
			}
			printInfo("  %3d  unlocked %s\n", u.TrophyID, u.UnlockedAt.Format(time.RFC3339))
		}
	}

	printInfo("\nDiagnostics:\n%s", out.Diagnostics.FormatTextCompact())
}
