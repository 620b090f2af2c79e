// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/grant-reporter/internal/roster"
)

var rosterCmd = &cobra.Command{
	Use:   "roster [file]",
	Short: "Extract a deduplicated investigator roster from a name blob",
	Long: `Roster reads a text blob of concatenated "Last, First" names (from a file
argument or stdin), splits it into discrete name pairs, removes duplicates
while keeping first-seen order, and writes the roster CSV consumed by fetch.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRoster,
}

func init() {
	rosterCmd.Flags().String("out", "names.csv", "roster CSV output path")

	rootCmd.AddCommand(rosterCmd)
}

func runRoster(cmd *cobra.Command, args []string) error {
	var blob []byte
	var err error
	if len(args) == 1 {
		blob, err = os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading name blob: %w", err)
		}
	} else {
		blob, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading name blob from stdin: %w", err)
		}
	}

	names := roster.Parse(string(blob))
	if len(names) == 0 {
		return fmt.Errorf("no names found in input")
	}

	outPath := stringSetting(cmd, "out", "roster.out")
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating roster file: %w", err)
	}
	defer f.Close()

	if err := roster.WriteCSV(f, names); err != nil {
		return err
	}

	for i, n := range names {
		fmt.Printf("%-4d  %s\n", i+1, n)
	}
	fmt.Printf("\n%d unique names written to %s\n", len(names), outPath)
	return nil
}
