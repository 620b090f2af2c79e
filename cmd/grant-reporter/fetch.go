// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/grant-reporter/internal/grants"
	"github.com/pdiddy/grant-reporter/internal/report"
	"github.com/pdiddy/grant-reporter/internal/reporter"
	"github.com/pdiddy/grant-reporter/internal/roster"
	"github.com/pdiddy/grant-reporter/internal/store"
	"github.com/pdiddy/grant-reporter/pkg/types"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultDelay     = 1 * time.Second
	defaultLimit     = 50
	defaultUserAgent = "grant-reporter/0.1"

	// defaultCutoff is the business rule for "worth reporting": the
	// overall project must run at least into this date.
	defaultCutoff = "2026-01-01"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Query NIH RePORTER per roster entry and build the funding report",
	Long: `Fetch reads the roster CSV, queries the NIH RePORTER API once per
investigator (strictly one at a time), keeps the grants whose budget period
ends after today and whose project end date reaches the cutoff, and writes
the aggregated report CSV plus a run summary.

A failed query means an empty contribution for that name; the rest of the
roster is still processed.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().String("roster", "names.csv", "roster CSV input path")
	fetchCmd.Flags().String("out", "grant_funding.csv", "report CSV output path")
	fetchCmd.Flags().String("cutoff", defaultCutoff, "project end cutoff date (YYYY-MM-DD)")
	fetchCmd.Flags().Int("limit", defaultLimit, "maximum records requested per investigator")
	fetchCmd.Flags().Duration("timeout", defaultTimeout, "HTTP request timeout")
	fetchCmd.Flags().Duration("delay", defaultDelay, "delay between consecutive queries")
	fetchCmd.Flags().String("report-dir", "report", "base directory for report artifacts")
	fetchCmd.Flags().Bool("save", false, "ingest fetched rows into the report store")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	rosterPath := stringSetting(cmd, "roster", "fetch.roster")
	outPath := stringSetting(cmd, "out", "fetch.out")
	cutoffStr := stringSetting(cmd, "cutoff", "fetch.cutoff")
	limit := intSetting(cmd, "limit", "fetch.limit")
	timeout := durationSetting(cmd, "timeout", "fetch.timeout")
	delay := durationSetting(cmd, "delay", "fetch.delay")
	reportDir := stringSetting(cmd, "report-dir", "report_dir")
	save, _ := cmd.Flags().GetBool("save")

	cutoff, err := time.Parse("2006-01-02", cutoffStr)
	if err != nil {
		return fmt.Errorf("invalid cutoff %q: expected YYYY-MM-DD", cutoffStr)
	}

	f, err := os.Open(rosterPath)
	if err != nil {
		return fmt.Errorf("opening roster: %w", err)
	}
	names, err := roster.ReadCSV(f)
	f.Close()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return fmt.Errorf("roster %s has no entries", rosterPath)
	}

	cfg := types.FetchConfig{
		QueryConfig: types.QueryConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   timeout,
				UserAgent: defaultUserAgent,
			},
			Limit: limit,
		},
		QueryDelay: delay,
	}

	client := &reporter.Client{HTTP: &http.Client{Timeout: timeout}}
	today := grants.DateOnly(time.Now())

	ctx := context.Background()
	result, err := grants.Run(ctx, client, names, cfg, today, cutoff, os.Stdout)
	if err != nil {
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	defer out.Close()
	if err := report.WriteCSV(out, result.Records); err != nil {
		return err
	}
	fmt.Printf("%d active grant rows written to %s\n", len(result.Records), outPath)

	if err := os.MkdirAll(reportDir, 0o755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}
	runPath := filepath.Join(reportDir, "run.yaml")
	if err := report.WriteRunFile(runPath, len(names), limit, today, cutoff, result); err != nil {
		fmt.Fprintf(os.Stderr, "warning: run summary write failed: %v\n", err)
	}

	if save {
		st, err := store.NewStore(types.StoreConfig{ReportDir: reportDir})
		if err != nil {
			return err
		}
		defer st.Close()

		saved := 0
		for _, c := range result.Contributions {
			n, err := st.Ingest(ctx, c.Name, c.Records)
			if err != nil {
				return fmt.Errorf("saving rows for %s: %w", c.Name, err)
			}
			saved += n
		}
		fmt.Printf("%d rows saved to the report store\n", saved)
	}

	return nil
}
