// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/grant-reporter/internal/store"
	"github.com/pdiddy/grant-reporter/pkg/types"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the report store to CSV, JSON, or YAML",
	Long: `Export writes the saved report rows (or a filtered subset) to
<report-dir>/index/export.csv, export.json, or export.yaml. Filters match
on the name a grant was queried under, the fiscal year, or a title
substring.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().String("format", "csv", "export format: csv, json, or yaml")
	exportCmd.Flags().String("report-dir", "report", "base directory for report artifacts")
	exportCmd.Flags().String("pi", "", "filter by queried last name")
	exportCmd.Flags().String("fy", "", "filter by fiscal year")
	exportCmd.Flags().String("title", "", "filter by title substring")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	reportDir := stringSetting(cmd, "report-dir", "report_dir")

	pi, _ := cmd.Flags().GetString("pi")
	fy, _ := cmd.Flags().GetString("fy")
	title, _ := cmd.Flags().GetString("title")
	opts := store.QueryOptions{PILast: pi, FiscalYear: fy, TitleLike: title}

	st, err := store.NewStore(types.StoreConfig{ReportDir: reportDir})
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	switch format {
	case "csv", "":
		if err := st.ExportCSV(ctx, opts); err != nil {
			return err
		}
		fmt.Printf("Exported to %s/index/export.csv\n", reportDir)
	case "json":
		if err := st.ExportJSON(ctx, opts); err != nil {
			return err
		}
		fmt.Printf("Exported to %s/index/export.json\n", reportDir)
	case "yaml":
		if err := st.ExportYAML(ctx, opts); err != nil {
			return err
		}
		fmt.Printf("Exported to %s/index/export.yaml\n", reportDir)
	default:
		return fmt.Errorf("unsupported format %q: use csv, json, or yaml", format)
	}

	return nil
}
